package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/shinyvision/kls/internal/cst"
	"github.com/shinyvision/kls/internal/scope"
	"github.com/shinyvision/kls/internal/scopebuilder"
	"github.com/shinyvision/kls/internal/textrange"
)

var log = commonlog.GetLoggerf("kls.project")

// ImportWorkspace walks every source set of p and imports its .kt files
// concurrently, one goroutine per file, the Go analog of
// create_file_scopes's per-file tokio::spawn. It returns once every file in
// every source set has been attempted; per-file errors are logged, not
// returned, matching the original's "log and move on" behavior for a single
// bad file.
func ImportWorkspace(ctx context.Context, p *scope.Project) {
	var wg sync.WaitGroup
	for _, ss := range p.SourceSets {
		entries, err := os.ReadDir(ss.Dir)
		if err != nil {
			log.Debugf("source set dir %s not present, skipping: %v", ss.Dir, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".kt") {
				continue
			}
			path := filepath.Join(ss.Dir, entry.Name())
			wg.Add(1)
			go func(ss *scope.SourceSet, path string) {
				defer wg.Done()
				if err := importFile(ctx, ss, path); err != nil {
					log.Errorf("error creating file scope for %s: %v", path, err)
				}
			}(ss, path)
		}
	}
	wg.Wait()
}

// importFile reads, parses, and scope-builds one file, then registers it on
// ss. Grounded on create_file_scope. The parsed tree is only needed to seed
// the scope arena here; a file re-opened for editing gets a live tree of
// its own from internal/workspace, so this one is closed once scope
// building finishes.
func importFile(ctx context.Context, ss *scope.SourceSet, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tree, err := cst.Parse(ctx, content)
	if err != nil {
		return err
	}
	defer tree.Close()

	f := scope.NewFile(path)
	b := scopebuilder.New(f)
	if err := b.UpdateScopes(tree, content, scopebuilder.ChangedRange{
		Range: textrange.New(0, uint32(len(content))),
		Op:    scopebuilder.Upsert,
	}); err != nil {
		return err
	}

	mu.Lock()
	ss.Files[path] = f
	mu.Unlock()
	return nil
}

// mu guards concurrent writes into SourceSet.Files from the per-file
// goroutines ImportWorkspace spawns; SourceSet itself carries no lock of its
// own since it is otherwise read-only after import.
var mu sync.Mutex
