package locator

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Role string

const (
	RoleContainers      Role = "containers"
	RoleText            Role = "text"
	RoleImages          Role = "images"
	RoleVideos          Role = "videos"
	RoleFrames          Role = "frames"
	RoleDates           Role = "dates"
	RoleAuthors         Role = "authors"
	RoleVideoPlayer     Role = "video_player"
	RolePlayButton      Role = "play_button"
	RoleVideoIndicators Role = "video_indicators"
	RoleCompanyName     Role = "company_name"
	RoleCompanyLogo     Role = "company_logo"
	RoleCoverImage      Role = "cover_image"
)

var knownRoles = map[Role]struct{}{
	RoleContainers: {}, RoleText: {}, RoleImages: {}, RoleVideos: {}, RoleFrames: {},
	RoleDates: {}, RoleAuthors: {}, RoleVideoPlayer: {}, RolePlayButton: {},
	RoleVideoIndicators: {}, RoleCompanyName: {}, RoleCompanyLogo: {}, RoleCoverImage: {},
}

//go:embed patterns.yaml
var defaultPatterns []byte

// Table holds the prioritized pattern list of every role.
type Table map[Role][]Pattern

type entry struct {
	CSS   string `yaml:"css"`
	XPath string `yaml:"xpath"`
}

// DefaultTable returns the built-in pattern lists.
func DefaultTable() Table {
	t, err := decode(defaultPatterns)
	if err != nil {
		panic(fmt.Sprintf("embedded patterns are invalid: %v", err))
	}
	return t
}

// LoadTable reads role overrides from YAML.
func LoadTable(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns: %w", err)
	}
	return decode(data)
}

// LoadTableFile merges the overrides in path over the defaults. An empty path
// returns the defaults.
func LoadTableFile(path string) (Table, error) {
	base := DefaultTable()
	if path == "" {
		return base, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open patterns file: %w", err)
	}
	defer f.Close()

	override, err := LoadTable(f)
	if err != nil {
		return nil, err
	}
	return base.Merge(override), nil
}

func decode(data []byte) (Table, error) {
	var raw map[string][]entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode patterns: %w", err)
	}

	t := make(Table, len(raw))
	for name, entries := range raw {
		role := Role(name)
		if _, ok := knownRoles[role]; !ok {
			return nil, fmt.Errorf("unknown role %q", name)
		}
		patterns := make([]Pattern, 0, len(entries))
		for i, e := range entries {
			switch {
			case e.CSS != "" && e.XPath != "":
				return nil, fmt.Errorf("role %q entry %d sets both css and xpath", name, i)
			case e.CSS != "":
				patterns = append(patterns, CSS(e.CSS))
			case e.XPath != "":
				patterns = append(patterns, XPath(e.XPath))
			default:
				return nil, fmt.Errorf("role %q entry %d is empty", name, i)
			}
		}
		t[role] = patterns
	}
	return t, nil
}

// Get returns the patterns for role.
func (t Table) Get(role Role) []Pattern {
	return t[role]
}

// Merge returns a copy of t with every role present in override replaced.
func (t Table) Merge(override Table) Table {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
