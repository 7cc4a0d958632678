package mls

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/mulanstring/mls/catalog/pocat"
	"github.com/mulanstring/mls/locale"
	"github.com/mulanstring/mls/template"
)

// Logger is used to print notifications and compile errors when using the
// "WatchFiles" feature.
var Logger = template.Logger.With().Str("component", "bundle").Logger()

type poFile struct {
	name    string // file path, or a label for strings added directly
	locale  string
	content string
	onDisk  bool
}

// Bundle is a collection of message catalogs. It acts as input for the
// template compiler: every translated message becomes a template compiled
// for the catalog's locale.
type Bundle struct {
	files                 []poFile
	locales               *locale.Registry
	opts                  template.Options
	err                   error
	watcher               *fsnotify.Watcher
	recompilationCallback func(*template.Registry)
}

// NewBundle returns an empty bundle using the built-in locales.
func NewBundle() *Bundle {
	return &Bundle{locales: locale.Default()}
}

// WithLocales sets the registry catalog locales are resolved against.
func (b *Bundle) WithLocales(r *locale.Registry) *Bundle {
	b.locales = r
	return b
}

// WithOptions sets the options templates are compiled with.
func (b *Bundle) WithOptions(opts template.Options) *Bundle {
	b.opts = opts
	return b
}

// WatchFiles tells the bundle to watch any catalog files added to it,
// re-compile as necessary, and propagate the updates to the registry.  It
// should be called once, before adding any files.
func (b *Bundle) WatchFiles(watch bool) *Bundle {
	if watch && b.err == nil && b.watcher == nil {
		b.watcher, b.err = fsnotify.NewWatcher()
	}
	return b
}

// AddCatalogDir adds all *.po files found within the given directory
// (including sub-directories) to the bundle. Each file's locale is taken from
// its name.
func (b *Bundle) AddCatalogDir(root string) *Bundle {
	var err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".po") {
			return nil
		}
		b.AddCatalogFile(path)
		return nil
	})
	if err != nil {
		b.err = err
	}
	return b
}

// AddCatalogFile adds the given PO file to this bundle. If WatchFiles is on,
// it will be subsequently watched for updates.
func (b *Bundle) AddCatalogFile(filename string) *Bundle {
	content, err := os.ReadFile(filename)
	if err != nil {
		b.err = err
	}
	if b.err == nil && b.watcher != nil {
		b.err = b.watcher.Add(filename)
	}
	b.files = append(b.files, poFile{filename, pocat.LocaleOf(filename), string(content), true})
	return b
}

// AddCatalogString adds PO content for the given locale. The name is only
// used for error messages.
func (b *Bundle) AddCatalogString(loc, name, content string) *Bundle {
	b.files = append(b.files, poFile{name, loc, content, false})
	return b
}

// SetRecompilationCallback assigns the bundle a function to call after
// recompilation.  This is called before updating the in-use registry.
func (b *Bundle) SetRecompilationCallback(c func(*template.Registry)) *Bundle {
	b.recompilationCallback = c
	return b
}

// Compile parses every catalog in the bundle and compiles each translated
// message for its locale. It stops at the first message that fails to
// compile. Untranslated messages are skipped.
func (b *Bundle) Compile() (*template.Registry, error) {
	var registry, err = b.compile()
	if err != nil {
		return nil, err
	}
	if b.watcher != nil {
		go b.recompiler(registry)
	}
	return registry, nil
}

func (b *Bundle) compile() (*template.Registry, error) {
	if b.err != nil {
		return nil, b.err
	}
	var (
		g        errgroup.Group
		compiled = make([][]*template.Template, len(b.files))
		registry = template.NewRegistry()
	)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range b.files {
		g.Go(func() error {
			var templates, err = b.compileFile(f)
			if err != nil {
				return fmt.Errorf("%s: %w", f.name, err)
			}
			compiled[i] = templates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Later files override earlier ones for the same locale and id.
	for _, templates := range compiled {
		for _, t := range templates {
			registry.Add(t)
		}
	}
	return registry, nil
}

func (b *Bundle) compileFile(f poFile) ([]*template.Template, error) {
	cat, err := pocat.Parse(f.locale, strings.NewReader(f.content))
	if err != nil {
		return nil, err
	}
	var loc = b.locales.Resolve(f.locale)
	if loc == nil {
		return nil, fmt.Errorf("%s: locale %q: no match and no fallback registered", f.name, f.locale)
	}
	if loc.Name() != locale.Normalize(f.locale) {
		Logger.Debug().Str("file", f.name).Str("locale", loc.Name()).Msg("resolved catalog locale")
	}
	var templates []*template.Template
	for _, msg := range cat.Messages() {
		if msg.Str == "" {
			continue
		}
		t, err := template.New(msg.Id, msg.Str, loc, b.opts)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

func (b *Bundle) recompiler(reg *template.Registry) {
	for {
		select {
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			// If it's a rename, then fsnotify has removed the watch.
			// Add it back, after a delay.
			if ev.Op&(fsnotify.Rename|fsnotify.Remove) != 0 {
				time.Sleep(10 * time.Millisecond)
				if err := b.watcher.Add(ev.Name); err != nil {
					Logger.Error().Err(err).Str("file", ev.Name).Msg("re-watch failed")
				}
			}

			var registry, err = b.reload().compile()
			if err != nil {
				Logger.Error().Err(err).Msg("recompilation failed, keeping previous templates")
				continue
			}
			if b.recompilationCallback != nil {
				b.recompilationCallback(registry)
			}
			reg.Replace(registry)
			Logger.Info().Str("event", ev.String()).Int("templates", registry.Len()).Msg("update successful")

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			Logger.Error().Err(err).Msg("watcher")
		}
	}
}

// reload returns a copy of the bundle with every on-disk catalog read again.
func (b *Bundle) reload() *Bundle {
	var next = NewBundle().WithLocales(b.locales).WithOptions(b.opts)
	for _, f := range b.files {
		if !f.onDisk {
			next.files = append(next.files, f)
			continue
		}
		content, err := os.ReadFile(f.name)
		if err != nil {
			next.err = err
			break
		}
		next.files = append(next.files, poFile{f.name, f.locale, string(content), true})
	}
	return next
}

// Close stops watching files.
func (b *Bundle) Close() error {
	if b.watcher == nil {
		return nil
	}
	return b.watcher.Close()
}
