package rod

const (
	BasicHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
	<h1>Hello World</h1>
</body>
</html>`

	ButtonHTML = `<!DOCTYPE html>
<html>
<head><title>Button</title></head>
<body>
	<input type="hidden" name="csrf" value="x" />
	<button id="go">Go</button>
	<div id="result"></div>
	<script>
		document.getElementById('go').addEventListener('click', function() {
			document.getElementById('result').textContent = 'Clicked!';
		});
	</script>
</body>
</html>`

	FormHTML = `<!DOCTYPE html>
<html>
<head><title>Form</title></head>
<body>
	<form>
		<input type="text" name="username" placeholder="User name" />
		<select name="color">
			<option value="r">Red</option>
			<option value="b">Blue</option>
		</select>
		<a href="/next">Next</a>
	</form>
</body>
</html>`

	NextHTML = `<!DOCTYPE html>
<html>
<head><title>Next</title></head>
<body><p>Second page</p><a href="/">Back home</a></body>
</html>`

	PopupHTML = `<!DOCTYPE html>
<html>
<head><title>Popup</title></head>
<body><a href="/next" target="_blank">Open next</a></body>
</html>`

	ScrollableHTML = `<!DOCTYPE html>
<html>
<body style="height: 5000px;">
	<h1 id="top">Top of Page</h1>
	<div style="margin-top: 2000px;" id="middle">Middle</div>
	<div style="margin-top: 2000px;" id="bottom">Bottom marker</div>
</body>
</html>`

	// VisibilityHTML mixes hidden controls with deep id-less nesting. The
	// first and third sections produce the same capped locator.
	VisibilityHTML = `<!DOCTYPE html>
<html>
<head>
<title>Visibility</title>
<script>
	function mark(el) {
		window.lastClicked = el.textContent.trim();
		return false;
	}
</script>
</head>
<body>
	<button id="shown" onclick="mark(this)">Shown</button>
	<button style="display: none" onclick="mark(this)">DisplayNone</button>
	<button style="visibility: hidden" onclick="mark(this)">Invisible</button>
	<div role="button" style="width: 0; height: 0; overflow: hidden">Zero</div>
	<div id="menu"><span><a href="#" onclick="return mark(this)">One</a></span></div>
	<section>
		<div><div><div><div><div><div><div>
			<a href="#" onclick="return mark(this)">Deep A</a>
		</div></div></div></div></div></div></div>
	</section>
	<section>
		<div id="panel"><div><div><div><div><div><div>
			<a href="#" onclick="return mark(this)">Pinned</a>
		</div></div></div></div></div></div></div>
	</section>
	<section>
		<div><div><div><div><div><div><div>
			<a href="#" onclick="return mark(this)">Deep B</a>
		</div></div></div></div></div></div></div>
	</section>
</body>
</html>`
)
