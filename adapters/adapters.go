package adapters

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/rdb2csv/rdb2csv/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no adapter registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var registeredAdapters = make(map[string]core.Adapter)

// register registers a new adapter for specific database
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	adapter, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedTypeAlias, typ, strings.Join(Types(), ", "))
	}

	return adapter, nil
}

// Types returns the registered type aliases in sorted order.
func Types() []string {
	types := make([]string, 0, len(registeredAdapters))
	for typ := range registeredAdapters {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// uuidProcessor renders 16 byte uuid values in their canonical form.
func uuidProcessor(v any) any {
	var b []byte
	if val, ok := v.([]byte); ok {
		b = val
	} else {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Array || rv.Len() != 16 || rv.Type().Elem().Kind() != reflect.Uint8 {
			return v
		}
		b = make([]byte, 16)
		reflect.Copy(reflect.ValueOf(b), rv)
	}

	id, err := uuid.FromBytes(b)
	if err != nil {
		return string(b)
	}
	return id.String()
}

// NewReader is a wrapper around core.NewReader that uses the internal mux for
// adapter registration.
func NewReader(typ string, opts ...core.ReaderOption) (*core.Reader, error) {
	adapter, err := new(Mux).GetAdapter(typ)
	if err != nil {
		return nil, fmt.Errorf("Mux.GetAdapter: %w", err)
	}

	return core.NewReader(adapter, opts...), nil
}

// existingFile makes sure path points to a regular file, so that opening a
// database never creates one.
func existingFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("filepath.Abs: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("os.Stat: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	return abs, nil
}

// fileURI returns a "file:" uri for an absolute path with the given query parameters.
func fileURI(abs string, params url.Values) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// windows drive letter
		p = "/" + p
	}

	u := &url.URL{
		Scheme:   "file",
		Path:     p,
		RawQuery: params.Encode(),
	}
	return u.String()
}

// quoteLiteral quotes s as an sql string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Helper function to get database from url
func parseDatabaseFromPath(path string) string {
	base := filepath.Base(path)
	parts := strings.Split(base, ".")
	if len(parts) > 1 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts[0]
}
