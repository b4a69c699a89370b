package entity

// ElementDescriptor describes one visible interactive element captured by a
// page snapshot. Descriptors are rebuilt on every snapshot.
type ElementDescriptor struct {
	Locator     string `json:"locator"`
	Tag         string `json:"tag"`
	InputType   string `json:"type"`
	Role        string `json:"role"`
	Placeholder string `json:"placeholder"`
	Title       string `json:"title"`
	AriaLabel   string `json:"ariaLabel"`
	Text        string `json:"text"`
}

type DropdownOption struct {
	Index int    `json:"idx"`
	Text  string `json:"text"`
	Value string `json:"value"`
}
