package scene

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/radovskyb/watcher"

	"github.com/poselab/gopose/event"
)

var log = event.Log

// Library holds the named poses of a workspace directory. Every pose lives
// in its own JSON file. The directory is watched, so edits made outside of
// the service (or by another instance) show up without a restart.
type Library struct {
	dir   string
	mutex sync.Mutex // guards poses
	poses map[string]Document
	watch *watcher.Watcher
}

// NewLibrary loads all pose documents from the given directory and starts
// watching it for changes. The directory is created when it does not exist.
func NewLibrary(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create workspace directory %s: %v", dir, err)
	}

	l := &Library{
		dir:   dir,
		poses: make(map[string]Document),
		watch: watcher.New(),
	}
	if err := l.reload(); err != nil {
		return nil, err
	}

	go l.watchWorkspace()
	return l, nil
}

func (l *Library) reload() error {

	files, err := ioutil.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("cannot read workspace directory %s: %v", l.dir, err)
	}

	poses := make(map[string]Document)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		buf, err := ioutil.ReadFile(filepath.Join(l.dir, f.Name()))
		if err != nil {
			log.Error("Cannot read pose file: ", err)
			continue
		}
		name := strings.TrimSuffix(f.Name(), ".json")
		doc := ParseDocument(name, buf)
		poses[doc.Name] = doc
	}

	l.mutex.Lock()
	l.poses = poses
	l.mutex.Unlock()

	log.WithFields(event.Fields{
		"dir":   l.dir,
		"poses": len(poses),
	}).Debug("Workspace loaded")
	return nil
}

func (l *Library) watchWorkspace() {

	watch := l.watch
	watch.FilterOps(watcher.Write, watcher.Create, watcher.Remove, watcher.Rename)

	go func() {
		for {
			select {
			case <-watch.Event:
				log.Println("Workspace got changed, reload poses")
				if err := l.reload(); err != nil {
					log.Error(err)
				}
			case err := <-watch.Error:
				if err == watcher.ErrWatchedFileDeleted {
					// happens when the watcher looks for a file while the OS
					// is replacing it
					continue
				}
				log.Error("Workspace cannot be watched: ", err)
			case <-watch.Closed:
				return
			}
		}
	}()

	if err := watch.Add(l.dir); err != nil {
		log.Error(err)
	}

	if err := watch.Start(time.Second * 1); err != nil {
		log.Error(err)
	}
}

// Close stops the workspace watcher
func (l *Library) Close() {
	l.watch.Close()
}

// List returns all poses sorted by name
func (l *Library) List() []Document {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	list := make([]Document, 0, len(l.poses))
	for _, doc := range l.poses {
		list = append(list, doc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Get returns the pose with the given name
func (l *Library) Get(name string) (Document, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	doc, ok := l.poses[name]
	return doc, ok
}

// Save writes the pose document to the workspace and adds it to the library
func (l *Library) Save(doc Document) error {
	buf, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal pose %s: %v", doc.Name, err)
	}

	if err := ioutil.WriteFile(l.fileName(doc.Name), buf, 0644); err != nil {
		return fmt.Errorf("cannot write pose %s: %v", doc.Name, err)
	}

	l.mutex.Lock()
	l.poses[doc.Name] = doc
	l.mutex.Unlock()
	return nil
}

// Delete removes the pose from the library and deletes its file
func (l *Library) Delete(name string) error {
	l.mutex.Lock()
	_, ok := l.poses[name]
	delete(l.poses, name)
	l.mutex.Unlock()

	if !ok {
		return fmt.Errorf("pose %s does not exist", name)
	}

	if err := os.Remove(l.fileName(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cannot delete pose %s: %v", name, err)
	}
	return nil
}

func (l *Library) fileName(name string) string {
	return filepath.Join(l.dir, name+".json")
}
