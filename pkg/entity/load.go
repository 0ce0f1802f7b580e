package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stickfigures/pkg/buildinfo"
	"github.com/matzehuels/stickfigures/pkg/errors"
	"github.com/matzehuels/stickfigures/pkg/observability"
)

// maxSourceSize caps how much of a source document is read.
const maxSourceSize = 8 << 20

// record is the wire form of an entity. Vars is a slice so that arity
// mismatches are detected instead of silently truncated or zero-filled.
type record struct {
	ID   *ID        `json:"id"`
	Vars []*float64 `json:"vars"`
}

// Decode reads a JSON array of entities from r and validates it.
//
// Decode returns an error with code LOAD_FAILED wrapping the specific cause
// when the document is not valid JSON, is not an array of records, a record
// has a missing or invalid id, an id appears twice, a record does not have
// exactly [Arity] numeric vars, the array is empty, or anything other than
// whitespace follows the array.
func Decode(r io.Reader) (Collection, error) {
	var recs []record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode"), "invalid document")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeLoad,
			errors.New(errors.ErrCodeInvalidInput, "unexpected data after array at offset %d", dec.InputOffset()),
			"invalid document")
	}
	if len(recs) == 0 {
		return nil, errors.Wrap(errors.ErrCodeLoad, errors.New(errors.ErrCodeInvalidInput, "no entities"), "invalid document")
	}

	c := make(Collection, 0, len(recs))
	seen := make(map[ID]int, len(recs))
	for i, rec := range recs {
		e, err := rec.entity()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeLoad, err, "record %d", i)
		}
		if prev, dup := seen[e.ID]; dup {
			return nil, errors.Wrap(errors.ErrCodeLoad,
				errors.New(errors.ErrCodeDuplicateID, "id %q already used by record %d", e.ID, prev),
				"record %d", i)
		}
		seen[e.ID] = i
		c = append(c, e)
	}
	return c, nil
}

func (rec record) entity() (Entity, error) {
	if rec.ID == nil {
		return Entity{}, errors.New(errors.ErrCodeInvalidEntity, "missing id")
	}
	if err := errors.ValidateEntityID(string(*rec.ID)); err != nil {
		return Entity{}, err
	}
	if len(rec.Vars) != Arity {
		return Entity{}, errors.New(errors.ErrCodeInvalidEntity, "entity %q: expected %d vars, got %d", *rec.ID, Arity, len(rec.Vars))
	}
	e := Entity{ID: *rec.ID}
	for i, v := range rec.Vars {
		if v == nil {
			return Entity{}, errors.New(errors.ErrCodeInvalidEntity, "entity %q: var %d is null", *rec.ID, i)
		}
		e.Vars[i] = *v
	}
	return e, nil
}

// Loader fetches and decodes a data source once.
type Loader struct {
	// Client is used for http(s) sources. Nil means http.DefaultClient.
	Client *http.Client
	Logger *log.Logger
}

// Load reads source, which is either a local file path or an http(s) URL,
// and decodes it with [Decode]. All failures carry the LOAD_FAILED code.
func (l Loader) Load(ctx context.Context, source string) (Collection, error) {
	hooks := observability.Load()
	start := time.Now()
	hooks.OnLoadStart(ctx, source)

	c, err := l.load(ctx, source)
	hooks.OnLoadComplete(ctx, source, len(c), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	l.logger().Debug("Decoded entities", "source", source, "count", len(c))
	return c, nil
}

// Load is a convenience wrapper around a zero [Loader].
func Load(ctx context.Context, source string) (Collection, error) {
	return Loader{}.Load(ctx, source)
}

func (l Loader) load(ctx context.Context, source string) (Collection, error) {
	data, err := l.read(ctx, source)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoad, err, "load %s", source)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return c, nil
}

func (l Loader) read(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		return l.fetch(ctx, source)
	}
	f, err := os.Open(source)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", source)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxSourceSize))
}

func (l Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	l.logger().Debug("Fetching data source", "url", url)
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "fetch %s: %s", url, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
}

func (l Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
