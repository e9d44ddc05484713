// exiftool/paths.go

package exiftool

import "strings"

// DefaultCommand is the bare command name probed through the search path.
const DefaultCommand = "exiftool"

// SearchPaths is the ordered candidate list used by the Locator.
type SearchPaths struct {
	// Primary is checked first; when it exists nothing else is probed.
	Primary string
	// Alternatives are checked in order. Entries may be executables or directories.
	Alternatives []string
	// Command is the bare name tried through the process search path.
	Command string
}

// DefaultSearchPaths returns the built-in candidate list for the given GOOS value.
func DefaultSearchPaths(goos string) SearchPaths {
	if goos == "windows" {
		return SearchPaths{
			Primary: `c:\exiftool\exiftool.exe`,
			Alternatives: []string{
				`c:\exiftool\exiftool(-k).exe`,
				`c:\exiftool\exiftool.exe`,
				`c:\exiftool`,
			},
			Command: DefaultCommand,
		}
	}

	return SearchPaths{
		Primary: "/usr/local/bin/exiftool",
		Alternatives: []string{
			"/opt/homebrew/bin/exiftool",
			"/usr/bin/exiftool",
			"/opt/exiftool",
		},
		Command: DefaultCommand,
	}
}

// DirectoryExecutableNames returns the two executable names looked up inside a directory reference,
// in order of preference.
func DirectoryExecutableNames(goos string) []string {
	if goos == "windows" {
		return []string{"exiftool.exe", "exiftool(-k).exe"}
	}
	return []string{"exiftool", "exiftool.pl"}
}

// WithOverride returns a copy whose primary path is replaced by override.
// The previous primary is kept as the first alternative so it is still considered.
func (p SearchPaths) WithOverride(override string) SearchPaths {
	override = strings.TrimSpace(override)
	if override == "" {
		return p.clone()
	}
	out := p.clone()
	if out.Primary != "" && out.Primary != override {
		out.Alternatives = append([]string{out.Primary}, out.Alternatives...)
	}
	out.Primary = override
	return out
}

// WithExtra returns a copy with extra candidates placed before the built-in alternatives.
// Blank entries are ignored.
func (p SearchPaths) WithExtra(extra []string) SearchPaths {
	out := p.clone()
	var prefix []string
	for _, candidate := range extra {
		if c := strings.TrimSpace(candidate); c != "" {
			prefix = append(prefix, c)
		}
	}
	if len(prefix) > 0 {
		out.Alternatives = append(prefix, out.Alternatives...)
	}
	return out
}

// All lists every candidate in probing order, including the bare command.
func (p SearchPaths) All() []string {
	var all []string
	if p.Primary != "" {
		all = append(all, p.Primary)
	}
	all = append(all, p.Alternatives...)
	if p.Command != "" {
		all = append(all, p.Command)
	}
	return all
}

func (p SearchPaths) clone() SearchPaths {
	out := p
	out.Alternatives = append([]string(nil), p.Alternatives...)
	return out
}
