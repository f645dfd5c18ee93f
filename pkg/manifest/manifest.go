// Package manifest loads declarative route trees from TOML files.
//
// A manifest names the application and declares its routes as a nested table
// tree. Child paths are relative to their parent, exactly as in [route.Def]:
//
//	[app]
//	name = "blog"
//	origin = "https://myapp.com"
//
//	[[route]]
//	path = "/"
//	name = "home"
//
//	  [[route.children]]
//	  path = "about"
//	  name = "about"
//
//	  [[route.children]]
//	  path = "post/:id"
//	  name = "post"
//
//	    [[route.children.children]]
//	    path = "comments"
//	    name = "comments"
//
// [Load] reads and validates a manifest; [App.Build] turns it into a
// [route.Tree] ready for a router.
package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/pathlight/pathlight/pkg/errors"
	"github.com/pathlight/pathlight/pkg/route"
)

// App is a parsed manifest.
type App struct {
	Name   string  `toml:"name"`
	Origin string  `toml:"origin"`
	Routes []Route `toml:"route"`
}

// Route is one route declaration. Children nest arbitrarily deep.
type Route struct {
	Path     string  `toml:"path"`
	Name     string  `toml:"name"`
	Children []Route `toml:"children"`
}

// manifestFile is the top-level TOML shape.
type manifestFile struct {
	App struct {
		Name   string `toml:"name"`
		Origin string `toml:"origin"`
	} `toml:"app"`
	Routes []Route `toml:"route"`
}

// Load reads a manifest from disk.
func Load(path string) (*App, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a manifest from r and validates it.
func Parse(r io.Reader) (*App, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var mf manifestFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse manifest")
	}

	app := &App{Name: mf.App.Name, Origin: mf.App.Origin, Routes: mf.Routes}
	if err := app.validate(); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) validate() error {
	if len(a.Routes) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest declares no routes")
	}

	if a.Origin != "" {
		if err := errors.ValidateOrigin(a.Origin); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "manifest origin")
		}
	}

	var check func(r Route) error
	check = func(r Route) error {
		if r.Path == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "route with empty path (name %q)", r.Name)
		}
		for _, c := range r.Children {
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range a.Routes {
		if err := check(r); err != nil {
			return err
		}
	}
	return nil
}

// Build converts the manifest's declarations into a route tree.
// Pattern errors from [route.New] pass through with their INVALID_PATTERN code.
func (a *App) Build() (*route.Tree, error) {
	defs := make([]route.Def, 0, len(a.Routes))
	for _, r := range a.Routes {
		defs = append(defs, toDef(r))
	}
	return route.New(defs...)
}

func toDef(r Route) route.Def {
	d := route.Def{Path: r.Path, Name: r.Name}
	for _, c := range r.Children {
		d.Children = append(d.Children, toDef(c))
	}
	return d
}
