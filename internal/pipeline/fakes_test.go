package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/backmassage/jxlmigrate/internal/logging"
	"github.com/backmassage/jxlmigrate/internal/naming"
	"github.com/backmassage/jxlmigrate/internal/planner"
)

var errExit = errors.New("exit status 1")

// fakeGateway mimics codec.Gateway on an in-memory filesystem: outputs are
// written next to the input and inherit its mtime.
type fakeGateway struct {
	fs afero.Fs

	lossless      map[string]bool  // probe answer per path
	probeErr      error            // returned by every probe when set
	failDecode    map[string]bool  // decoder fails for these inputs
	failEncode    map[string]bool  // encoder fails for these inputs
	partialEncode map[string]bool  // encoder writes output, then fails
	silentEncode  map[string]bool  // encoder reports success but writes nothing
	outSize       map[string]int64 // output size per input; default 10

	mu    sync.Mutex
	calls []string
}

func newFakeGateway(fs afero.Fs) *fakeGateway {
	return &fakeGateway{
		fs:            fs,
		lossless:      map[string]bool{},
		failDecode:    map[string]bool{},
		failEncode:    map[string]bool{},
		partialEncode: map[string]bool{},
		silentEncode:  map[string]bool{},
		outSize:       map[string]int64{},
	}
}

func (g *fakeGateway) record(format string, args ...interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *fakeGateway) ProbeIsLossless(_ context.Context, path string) (bool, error) {
	g.record("probe %s", path)
	if g.probeErr != nil {
		return false, g.probeErr
	}
	return g.lossless[path], nil
}

func (g *fakeGateway) Encode(_ context.Context, path string, lossless bool) (string, error) {
	g.record("encode %s lossless=%v", path, lossless)
	out := naming.TargetPath(path)
	if g.failEncode[path] {
		return out, errExit
	}
	if g.silentEncode[path] {
		return out, nil
	}
	if err := g.write(path, out); err != nil {
		return out, err
	}
	if g.partialEncode[path] {
		return out, errExit
	}
	return out, nil
}

func (g *fakeGateway) Decode(_ context.Context, path string) (string, error) {
	g.record("decode %s", path)
	out := naming.DecodedPath(path)
	if g.failDecode[path] {
		return out, errExit
	}
	return out, g.write(path, out)
}

func (g *fakeGateway) write(in, out string) error {
	info, err := g.fs.Stat(in)
	if err != nil {
		return err
	}
	size, ok := g.outSize[in]
	if !ok {
		size = 10
	}
	if err := afero.WriteFile(g.fs, out, bytes.Repeat([]byte{'x'}, int(size)), 0o644); err != nil {
		return err
	}
	return g.fs.Chtimes(out, time.Now(), info.ModTime())
}

var fileTime = time.Date(2020, 3, 4, 5, 6, 7, 0, time.UTC)

// writeFile creates path with size bytes and a fixed mtime and returns its
// discovery snapshot.
func writeFile(t *testing.T, fs afero.Fs, path string, size int) SourceFile {
	t.Helper()
	if err := afero.WriteFile(fs, path, bytes.Repeat([]byte{'s'}, size), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fs.Chtimes(path, fileTime, fileTime); err != nil {
		t.Fatal(err)
	}
	info, err := fs.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return SourceFile{Path: path, Ext: planner.Ext(path), Size: info.Size(), ModTime: info.ModTime()}
}

// snapshot lists every regular file with its size, for before/after
// comparisons of filesystem state.
func snapshot(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	var out []string
	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			out = append(out, fmt.Sprintf("%s:%d", path, info.Size()))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(out)
	return out
}

func exists(t *testing.T, fs afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, path)
	if err != nil {
		t.Fatal(err)
	}
	return ok
}

func quietLogger() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewWriterLogger(&buf), &buf
}
