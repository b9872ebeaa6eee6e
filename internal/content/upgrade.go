package content

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// CurrentVersion is the parameter version this build reads natively.
const CurrentVersion = "1.3"

type upgrade struct {
	version string
	apply   func(params map[string]any)
}

// upgrades run in order for content older than their version.
var upgrades = []upgrade{
	{version: "1.3", apply: renameCardRules},
}

// Upgrade migrates doc's params from its declared version to
// CurrentVersion in place. Content without a version is taken as current.
func Upgrade(doc map[string]any) error {
	version, _ := doc["version"].(string)
	if version == "" {
		version = versionFromLibrary(doc)
	}
	if version == "" {
		doc["version"] = CurrentVersion
		return nil
	}

	from := canonical(version)
	if !semver.IsValid(from) {
		return fmt.Errorf("upgrade content: invalid version %q", version)
	}

	params, _ := doc["params"].(map[string]any)
	for _, u := range upgrades {
		if semver.Compare(from, canonical(u.version)) >= 0 {
			continue
		}
		if params != nil {
			u.apply(params)
		}
	}

	if semver.Compare(from, canonical(CurrentVersion)) < 0 {
		doc["version"] = CurrentVersion
	}
	return nil
}

// versionFromLibrary reads the version out of "Machine.Name 1.2".
func versionFromLibrary(doc map[string]any) string {
	lib, _ := doc["library"].(string)
	_, v, ok := strings.Cut(strings.TrimSpace(lib), " ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// renameCardRules moves the text-field completion rules of 1.2 content to
// their card names.
func renameCardRules(params map[string]any) {
	boards, _ := params["boards"].([]any)
	for _, b := range boards {
		bm, ok := b.(map[string]any)
		if !ok {
			continue
		}
		rules, ok := bm["completionRules"].(map[string]any)
		if !ok || rules == nil {
			continue
		}
		rename(rules, "numberTextFieldsCreated", "numberCardsCreated")
		rename(rules, "numberTextFieldsEdited", "numberCardsEdited")
	}
}

func rename(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	delete(m, from)
	m[to] = v
}
