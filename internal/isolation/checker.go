// Package isolation finds dashboard code that reads or writes per-user data
// through raw localStorage instead of the user-scoped storage helper.
package isolation

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"sort"
)

// UserDataKeys are the localStorage keys holding per-user wedding data.
var UserDataKeys = []string{
	"budget",
	"todos",
	"guests",
	"seating",
	"ceremony",
	"favoriteVendors",
	"myVendors",
	"registries",
	"bachelorTrip",
	"vivahaSplit",
	"aiAssistantState",
	"vendorNotes",
	"postWeddingPhotos",
	"wantsBachelorParty",
	"onboarding",
}

var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
	".js":  true,
	".jsx": true,
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
}

var storageCall = regexp.MustCompile("localStorage\\.(getItem|setItem|removeItem)\\(\\s*['\"`]([A-Za-z0-9_-]+)['\"`]")

// Finding is one direct localStorage access to a user-data key.
type Finding struct {
	File   string
	Line   int
	Method string
	Key    string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: localStorage.%s('%s')", f.File, f.Line, f.Method, f.Key)
}

type Checker struct {
	keys map[string]bool
}

func NewChecker(keys []string) *Checker {
	c := &Checker{keys: make(map[string]bool, len(keys))}
	for _, k := range keys {
		c.keys[k] = true
	}
	return c
}

// CheckSource scans one file. name is only used to label findings.
func (c *Checker) CheckSource(name string, r io.Reader) ([]Finding, error) {
	var findings []Finding
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		for _, m := range storageCall.FindAllStringSubmatch(scanner.Text(), -1) {
			if c.keys[m[2]] {
				findings = append(findings, Finding{File: name, Line: line, Method: m[1], Key: m[2]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", name, err)
	}
	return findings, nil
}

// CheckFS walks fsys and scans every JavaScript or TypeScript source.
// Findings are sorted by file then line.
func (c *Checker) CheckFS(fsys fs.FS) ([]Finding, error) {
	var findings []Finding
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if !sourceExtensions[path.Ext(p)] {
			return nil
		}

		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		found, err := c.CheckSource(p, f)
		if err != nil {
			return err
		}
		findings = append(findings, found...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Line < findings[j].Line
	})
	return findings, nil
}
