package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"browser-mcp/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedSession(t *testing.T) (*Session, *fakeLauncher) {
	t.Helper()
	l := newFakeLauncher()
	s := New(l, nil, nopLogger{}, testConfig())
	_, err := s.Start(context.Background(), true, "find the price")
	require.NoError(t, err)
	return s, l
}

func activePage(s *Session) *fakePage {
	return s.page.(*fakePage)
}

func TestStart_ReturnsGuidance(t *testing.T) {
	l := newFakeLauncher()
	s := New(l, nil, nopLogger{}, testConfig())

	msg, err := s.Start(context.Background(), true, "find the price")
	require.NoError(t, err)

	assert.Contains(t, msg, "Your ultimate task is: find the price")
	assert.Contains(t, msg, "inspect_page")
	assert.Equal(t, "about:blank", activePage(s).url)
	assert.NotEmpty(t, s.id)
}

func TestStart_ReplacesRunningSession(t *testing.T) {
	s, l := startedSession(t)
	first := l.browser

	_, err := s.Start(context.Background(), true, "again")
	require.NoError(t, err)

	assert.True(t, first.IsClosed())
	assert.NotSame(t, first, l.browser)
}

func TestStart_FallsBackToNextProfile(t *testing.T) {
	l := newFakeLauncher()
	l.steps["robust"] = launchStep{err: errors.New("sandbox denied")}
	s := New(l, nil, nopLogger{}, testConfig())

	_, err := s.Start(context.Background(), true, "task")
	require.NoError(t, err)
	assert.Equal(t, []string{"robust", "basic"}, l.Attempts())
}

func TestStart_AttemptTimeoutMovesOn(t *testing.T) {
	l := newFakeLauncher()
	l.steps["robust"] = launchStep{delay: time.Second}
	cfg := testConfig()
	cfg.AttemptTimeout = 50 * time.Millisecond
	s := New(l, nil, nopLogger{}, cfg)

	_, err := s.Start(context.Background(), true, "task")
	require.NoError(t, err)
	assert.Equal(t, []string{"robust", "basic"}, l.Attempts())
}

func TestStart_AllProfilesFail(t *testing.T) {
	l := newFakeLauncher()
	for _, name := range []string{"robust", "basic", "minimal"} {
		l.steps[name] = launchStep{err: errors.New("no chrome for " + name)}
	}
	s := New(l, nil, nopLogger{}, testConfig())

	_, err := s.Start(context.Background(), true, "task")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStartup)
	assert.Contains(t, err.Error(), "all 3 configurations")
	assert.Contains(t, err.Error(), "no chrome for minimal")

	_, err = s.Navigate(context.Background(), "https://a.test")
	assert.ErrorIs(t, err, entity.ErrPrecondition)
}

func TestOperations_RequireSession(t *testing.T) {
	s := New(newFakeLauncher(), nil, nopLogger{}, testConfig())
	ctx := context.Background()

	_, err := s.Navigate(ctx, "https://a.test")
	assert.ErrorIs(t, err, entity.ErrPrecondition)
	_, err = s.Snapshot(ctx)
	assert.ErrorIs(t, err, entity.ErrPrecondition)
	_, err = s.Click(ctx, 1)
	assert.ErrorIs(t, err, entity.ErrPrecondition)
	_, err = s.SwitchTab(ctx, 0)
	assert.ErrorIs(t, err, entity.ErrPrecondition)
	_, err = s.Screenshot(ctx)
	assert.ErrorIs(t, err, entity.ErrPrecondition)

	out, err := s.Wait(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Waited for 0 seconds", out.Message)

	msg, err := s.End(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Browser closed successfully", msg)
}

func TestEnd_ClosesBrowser(t *testing.T) {
	s, l := startedSession(t)

	msg, err := s.End(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Browser closed successfully", msg)
	assert.True(t, l.browser.IsClosed())

	_, err = s.Snapshot(context.Background())
	assert.ErrorIs(t, err, entity.ErrPrecondition)
}

func TestSnapshot_ButtonAndHiddenInput(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	btn := &fakeElement{locator: "body > button:nth-of-type(1)", tag: "button", text: "Go"}
	page.add(btn, &fakeElement{locator: "body > input:nth-of-type(1)", tag: "input", typ: "hidden", hidden: true})

	out, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
	assert.Equal(t, "Interactive elements:\n1: <button> text=\"Go\"", out.Message)
	assert.Equal(t, 1, s.index.Len())
	assert.Equal(t, "https://a.test/", s.index.URL())

	out, err = s.Click(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
	assert.Equal(t, "Clicked element at index 1", out.Message)
	assert.Equal(t, 1, btn.clicks)

	out, err = s.Click(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeFailure, out.Kind)
	assert.ErrorIs(t, out.Err, entity.ErrIndexNotFound)
	assert.Contains(t, out.Message, "Element with index 2 does not exist")
}

func TestSnapshot_IndicesAreContiguous(t *testing.T) {
	s, _ := startedSession(t)
	page := activePage(s)
	page.add(
		&fakeElement{locator: "a#home", tag: "A", text: "Home"},
		&fakeElement{locator: "a#home", tag: "a", text: "Home again"},
		&fakeElement{locator: "", tag: "button"},
		&fakeElement{locator: "input#q", tag: "input", typ: "text"},
		&fakeElement{locator: "select#color", tag: "select"},
	)

	out, err := s.Snapshot(context.Background())
	require.NoError(t, err)

	lines := strings.Split(out.Message, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `1: <a> text="Home"`, lines[1])
	assert.Equal(t, `2: <input type=text>`, lines[2])
	assert.Equal(t, `3: <select>`, lines[3])

	for i := 1; i <= 3; i++ {
		_, err := s.index.Resolve(i)
		assert.NoError(t, err, "index %d", i)
	}
	_, err = s.index.Resolve(0)
	assert.ErrorIs(t, err, entity.ErrIndexNotFound)
	_, err = s.index.Resolve(4)
	assert.ErrorIs(t, err, entity.ErrIndexNotFound)
}

func TestSnapshot_EmptyPageIsWarning(t *testing.T) {
	s, _ := startedSession(t)
	activePage(s).url = "https://empty.test/"

	out, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWarning, out.Kind)
	assert.NoError(t, out.Err)
	assert.Equal(t, "No interactive elements found on this page.", out.Message)
	assert.Equal(t, "https://empty.test/", s.index.URL())
}

func TestSnapshot_ExtractionFailureClearsIndex(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	page.add(&fakeElement{locator: "button#go", tag: "button", text: "Go"})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, s.index.Len())

	page.extraction = []byte(`"TypeError: document.body is null"`)
	out, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeFailure, out.Kind)
	assert.ErrorIs(t, out.Err, entity.ErrExtraction)
	assert.Equal(t, 0, s.index.Len())
	assert.Empty(t, s.index.URL())
}

func TestSnapshot_EvaluationErrorIsExtractionFailure(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	page.add(&fakeElement{locator: "button#go", tag: "button", text: "Go"})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, s.index.Len())

	page.extractionErr = errors.New("eval js error: Execution context was destroyed.")
	out, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeFailure, out.Kind)
	assert.ErrorIs(t, out.Err, entity.ErrExtraction)
	assert.Contains(t, out.Err.Error(), "Execution context was destroyed")
	assert.Equal(t, 0, s.index.Len())
	assert.Empty(t, s.index.URL())

	page.extractionErr = nil
	out, err = s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
}

func TestSnapshot_DeadPageIsHardError(t *testing.T) {
	s, _ := startedSession(t)
	page := activePage(s)
	page.extractionErr = errors.New("eval js error: Target closed")
	page.urlErr = errors.New("No target with given id found")

	_, err := s.Snapshot(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrExtraction)
}

func TestSnapshot_CancelledContextIsHardError(t *testing.T) {
	s, _ := startedSession(t)
	activePage(s).extractionErr = context.Canceled

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Snapshot(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrExtraction)
}

func TestClick_StaleElementIsEvicted(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.add(&fakeElement{locator: "button#go", tag: "button"}, &fakeElement{locator: "a#next", tag: "a"})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)
	page.remove("button#go")

	out, err := s.Click(ctx, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, entity.ErrStaleElement)
	assert.Contains(t, out.Message, "element not found anymore")

	out, err = s.Click(ctx, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, entity.ErrIndexNotFound)

	out, err = s.Click(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
}

func TestClick_NavigationInvalidatesIndex(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	page.add(&fakeElement{locator: "a#next", tag: "a", onClick: func(p *fakePage) { p.url = "https://b.test/" }})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)
	epoch := s.index.Epoch()

	out, err := s.Click(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
	assert.Equal(t, 0, s.index.Len())
	assert.Greater(t, s.index.Epoch(), epoch)

	out, err = s.Click(ctx, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, entity.ErrIndexNotFound)
}

func TestClick_SameURLKeepsIndex(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	page.add(&fakeElement{locator: "button#toggle", tag: "button"}, &fakeElement{locator: "button#other", tag: "button"})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)

	_, err = s.Click(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.index.Len())
	assert.Equal(t, "https://a.test/", s.index.URL())
}

func TestClick_NewTabBecomesActive(t *testing.T) {
	s, l := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	l.browser.sites["https://b.test/"] = func(p *fakePage) { p.title = "B" }
	page.add(&fakeElement{locator: "a#popup", tag: "a", onClick: func(p *fakePage) { p.browser.open("https://b.test/") }})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)

	out, err := s.Click(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Clicked element at index 1 - New tab opened and switched to it.", out.Message)
	assert.Equal(t, "https://b.test/", activePage(s).url)
	assert.NotEqual(t, page.ID(), s.page.ID())
	assert.Equal(t, 0, s.index.Len())
}

func TestClick_FileInputIsRefused(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	upload := &fakeElement{locator: "input#file", tag: "input", typ: "file"}
	activePage(s).add(upload)

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)

	out, err := s.Click(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWarning, out.Kind)
	assert.Contains(t, out.Message, "file picker")
	assert.Zero(t, upload.clicks)
}

func TestFill_SensitiveTextIsNotEchoed(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	field := &fakeElement{locator: "input#pw", tag: "input", typ: "password"}
	activePage(s).add(field)

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)

	out, err := s.Fill(ctx, 1, "hunter2", true)
	require.NoError(t, err)
	assert.Equal(t, "Input sensitive data into index 1", out.Message)
	assert.NotContains(t, out.String(), "hunter2")
	assert.Equal(t, "hunter2", field.value)

	out, err = s.Fill(ctx, 1, "plain", false)
	require.NoError(t, err)
	assert.Equal(t, "Input plain into index 1", out.Message)
}

func TestDropdown_ListAndSelectByVisibleText(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	sel := &fakeElement{locator: "select#color", tag: "select", value: "r", options: []entity.DropdownOption{
		{Index: 0, Text: "Red", Value: "r"},
		{Index: 1, Text: "Blue", Value: "b"},
	}}
	activePage(s).add(sel, &fakeElement{locator: "button#go", tag: "button"})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)

	out, err := s.ListDropdownOptions(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, out.Message, `0: text="Red" value="r"`)
	assert.Contains(t, out.Message, `1: text="Blue" value="b"`)

	out, err = s.SelectDropdownOption(ctx, 1, "Blue")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
	assert.Equal(t, "b", sel.value)

	out, err = s.SelectDropdownOption(ctx, 1, "Green")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWarning, out.Kind)
	assert.ErrorIs(t, out.Err, entity.ErrNotFound)
	assert.Equal(t, "b", sel.value)

	out, err = s.ListDropdownOptions(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWarning, out.Kind)
	assert.Contains(t, out.Message, "is not a <select>")
}

func TestNavigate_ClearsIndex(t *testing.T) {
	s, l := startedSession(t)
	ctx := context.Background()
	l.browser.sites["https://a.test/"] = func(p *fakePage) {
		p.add(&fakeElement{locator: "a#x", tag: "a"})
	}

	out, err := s.Navigate(ctx, "https://a.test/")
	require.NoError(t, err)
	assert.Equal(t, "Navigated to https://a.test/", out.Message)

	_, err = s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, s.index.Len())

	_, err = s.Navigate(ctx, "https://a.test/")
	require.NoError(t, err)
	assert.Equal(t, 0, s.index.Len())

	out, err = s.GoBack(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Navigated back", out.Message)
	assert.Equal(t, "https://a.test/", activePage(s).url)
}

func TestSearch_EscapesQuery(t *testing.T) {
	s, _ := startedSession(t)

	out, err := s.Search(context.Background(), "go rod & mcp")
	require.NoError(t, err)
	assert.Equal(t, `Searched for "go rod & mcp" in Google`, out.Message)
	assert.Equal(t, "https://www.google.com/search?udm=14&q=go+rod+%26+mcp", activePage(s).url)
}

func TestTabs_OpenSwitchList(t *testing.T) {
	s, l := startedSession(t)
	ctx := context.Background()
	l.browser.sites["https://b.test/"] = func(p *fakePage) { p.title = "Bravo" }

	out, err := s.OpenTab(ctx, "https://b.test/")
	require.NoError(t, err)
	assert.Equal(t, "Opened new tab with https://b.test/", out.Message)
	assert.Equal(t, "https://b.test/", activePage(s).url)

	out, err = s.SwitchTab(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "Switched to tab 0 (about:blank)", out.Message)
	assert.True(t, activePage(s).activated)

	out, err = s.SwitchTab(ctx, -1)
	require.NoError(t, err)
	assert.Equal(t, "Switched to tab 1 (Bravo)", out.Message)

	out, err = s.ListTabs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Open tabs:\n0:  (about:blank)\n1: Bravo (https://b.test/) [active]", out.Message)
}

func TestSwitchTab_InvalidOrdinal(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	before := s.page.ID()

	for _, ordinal := range []int{1, 5, -2} {
		out, err := s.SwitchTab(ctx, ordinal)
		require.NoError(t, err)
		assert.Equal(t, entity.OutcomeFailure, out.Kind, "ordinal %d", ordinal)
		assert.Contains(t, out.Message, "1 tabs open")
	}
	assert.Equal(t, before, s.page.ID())
}

func TestScroll(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()

	out, err := s.ScrollDown(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Scrolled down the page by one page", out.Message)
	assert.Equal(t, 1000, activePage(s).scrollY)

	amount := 200
	out, err = s.ScrollUp(ctx, &amount)
	require.NoError(t, err)
	assert.Equal(t, "Scrolled up the page by 200 pixels", out.Message)
	assert.Equal(t, 800, activePage(s).scrollY)
}

func TestScrollToText(t *testing.T) {
	s, _ := startedSession(t)
	activePage(s).html = "<p>Shipping costs</p>"

	out, err := s.ScrollToText(context.Background(), "shipping")
	require.NoError(t, err)
	assert.Equal(t, "Scrolled to text: shipping", out.Message)

	out, err = s.ScrollToText(context.Background(), "refunds")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWarning, out.Kind)
}

func TestSendKeys_InvalidatesOnNavigation(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	page.add(&fakeElement{locator: "input#q", tag: "input"})

	_, err := s.Snapshot(ctx)
	require.NoError(t, err)
	page.url = "https://a.test/results"

	out, err := s.SendKeys(ctx, "Enter")
	require.NoError(t, err)
	assert.Equal(t, "Sent keys: Enter", out.Message)
	assert.Equal(t, []string{"Enter"}, page.keys)
	assert.Equal(t, 0, s.index.Len())
}

func TestValidatePage(t *testing.T) {
	html := "<html><body><h1>Order Confirmed</h1></body></html>"
	l := newFakeLauncher()
	s := New(l, mapConverter{html: "# Order Confirmed"}, nopLogger{}, testConfig())
	ctx := context.Background()
	_, err := s.Start(ctx, true, "task")
	require.NoError(t, err)
	activePage(s).html = html

	out, err := s.ValidatePage(ctx, "order confirmed")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
	assert.Equal(t, "Validation successful: Expected text 'order confirmed' found on page.", out.Message)

	out, err = s.ValidatePage(ctx, "payment failed")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeWarning, out.Kind)
	assert.Contains(t, out.Message, "Extracted snippet: # Order Confirmed")

	out, err = s.ValidatePage(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Page content extracted:\n# Order Confirmed...", out.Message)
}

func TestValidatePage_FallsBackToRawMarkup(t *testing.T) {
	s, _ := startedSession(t)
	activePage(s).html = "<p>Total: 42 EUR</p>"

	out, err := s.ValidatePage(context.Background(), "42 eur")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
}

func TestRunScript(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)

	page.scriptOut = []byte(`{"title":"A","links":2}`)
	out, err := s.RunScript(ctx, "({title: document.title, links: 2})")
	require.NoError(t, err)
	assert.Equal(t, "JavaScript executed successfully:\n{\n  \"title\": \"A\",\n  \"links\": 2\n}", out.Message)
	assert.Equal(t, "() => (({title: document.title, links: 2}))", page.lastScript)

	page.scriptOut = []byte(`"hello"`)
	out, err = s.RunScript(ctx, "() => 'hello'")
	require.NoError(t, err)
	assert.Equal(t, "JavaScript executed successfully. Result: hello", out.Message)
	assert.Equal(t, "() => 'hello'", page.lastScript)

	page.scriptOut = nil
	out, err = s.RunScript(ctx, "function () { console.log(1) }")
	require.NoError(t, err)
	assert.Equal(t, "JavaScript executed successfully. Result: undefined", out.Message)

	page.scriptOut = []byte(`null`)
	out, err = s.RunScript(ctx, "document.querySelector('#missing')")
	require.NoError(t, err)
	assert.Equal(t, "JavaScript executed successfully. Result: null", out.Message)

	page.scriptErr = errors.New("ReferenceError: foo is not defined")
	out, err = s.RunScript(ctx, "foo.bar")
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeFailure, out.Kind)
	assert.Contains(t, out.Message, "Error executing JavaScript: ReferenceError")
}

func TestAsFunction(t *testing.T) {
	cases := map[string]string{
		"document.title":               "() => (document.title)",
		"  1 + 2  ":                    "() => (1 + 2)",
		"() => document.title":         "() => document.title",
		"(a, b) => a + b":              "(a, b) => a + b",
		"x => x":                       "x => x",
		"function () { return 1 }":     "function () { return 1 }",
		"async () => await fetch('/')": "async () => await fetch('/')",
		"functionality()":              "() => (functionality())",
	}
	for in, want := range cases {
		assert.Equal(t, want, asFunction(in), in)
	}
}

func TestScreenshotAndComplete(t *testing.T) {
	s, _ := startedSession(t)

	shot, err := s.Screenshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "png", shot.Format)

	done := s.Complete(true, "price is 42")
	assert.Equal(t, entity.Completion{Done: true, Success: true, ExtractedContent: "price is 42"}, done)
}

func TestSession_ConcurrentCallsAreSerialized(t *testing.T) {
	s, _ := startedSession(t)
	ctx := context.Background()
	page := activePage(s)
	page.url = "https://a.test/"
	page.add(&fakeElement{locator: "button#a", tag: "button"}, &fakeElement{locator: "button#b", tag: "button"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = s.Snapshot(ctx)
				return
			}
			_, _ = s.Click(ctx, 1+i%2)
		}(i)
	}
	wg.Wait()

	out, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.index.Len())
	assert.Equal(t, entity.OutcomeSuccess, out.Kind)
}
