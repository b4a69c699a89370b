package entity

type TabInfo struct {
	Ordinal int
	Title   string
	URL     string
	Active  bool
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// LaunchProfile is one browser configuration tried during session startup.
type LaunchProfile struct {
	Name    string   `yaml:"name"`
	Stealth bool     `yaml:"stealth"`
	Args    []string `yaml:"args"`
}
