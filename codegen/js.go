package codegen

import "github.com/dhamidi/fidl/model"

// JS generates an ES module exporting the version and enumerations of
// every interface and type collection.
type JS struct{}

func (JS) Name() string { return "js" }

func (JS) Generate(file *model.File, base string) ([]Output, error) {
	c := &code{}
	for _, u := range units(file) {
		major, minor := u.versionNumbers()
		c.blank()
		c.line(0, "export const %s = Object.freeze({", u.name)
		c.line(1, "VERSION: Object.freeze({ major: %d, minor: %d }),", major, minor)
		for _, e := range u.enumerations {
			values, err := NumberEnum(e)
			if err != nil {
				return nil, err
			}
			c.line(1, "%s: Object.freeze({", e.Name)
			for _, v := range values {
				c.line(2, "%s: %d,", v.Name, v.Value)
			}
			c.line(1, "}),")
		}
		c.line(0, "});")
	}
	return []Output{{Path: base + ".js", Content: c.String()}}, nil
}
