// Package assets locates report imagery on disk by naming convention:
// header/footer images and a front photo as flat files in the images root,
// per-room photo sets in immediate subdirectories.
package assets

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultRooms is used when the images root has no subdirectories at all.
// The rooms then have empty photo sets, which the composer fills with
// placeholders.
var DefaultRooms = []string{
	"kitchen", "dining", "living", "bedroom1", "bedroom2",
	"bathroom", "storage", "basement", "garage",
}

// FrontPhotoKeywords identify the exterior shot among the root's flat files.
var FrontPhotoKeywords = []string{"front", "exterior", "house"}

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Room is one photo gallery: a name taken from the subdirectory and its
// image files in lexicographic order.
type Room struct {
	Name   string
	Photos []string
}

// Set holds everything the resolver found for one claim. Any of the image
// paths may be empty: a miss is an expected condition, not an error.
type Set struct {
	Header string
	Footer string
	Front  string
	Rooms  []Room
}

// Resolver performs convention-based lookups under a single images root.
type Resolver struct {
	root string
}

// NewResolver creates a resolver for the given images root. The root is not
// required to exist; lookups against a missing root simply find nothing.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve assembles the full asset set for one report.
func (r *Resolver) Resolve() Set {
	header, footer := r.HeaderFooter()
	set := Set{
		Header: header,
		Footer: footer,
		Front:  r.FindPhoto(FrontPhotoKeywords...),
	}
	for _, name := range r.RoomFolders() {
		set.Rooms = append(set.Rooms, Room{Name: name, Photos: r.RoomPhotos(name)})
	}
	return set
}

// HeaderFooter returns the first image file whose name contains "header" and
// the first whose name contains "footer". Entries are scanned in
// lexicographic order so the selection is reproducible.
func (r *Resolver) HeaderFooter() (header, footer string) {
	for _, e := range r.listImages(r.root) {
		name := strings.ToLower(e)
		switch {
		case header == "" && strings.Contains(name, "header"):
			header = filepath.Join(r.root, e)
		case footer == "" && strings.Contains(name, "footer"):
			footer = filepath.Join(r.root, e)
		}
	}
	return header, footer
}

// FindPhoto returns the first image in the root whose lowercased name
// contains any of the given keywords, or "" when nothing matches.
func (r *Resolver) FindPhoto(keywords ...string) string {
	for _, e := range r.listImages(r.root) {
		name := strings.ToLower(e)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return filepath.Join(r.root, e)
			}
		}
	}
	return ""
}

// RoomFolders returns the names of the root's immediate subdirectories in
// lexicographic order, or DefaultRooms when there are none.
func (r *Resolver) RoomFolders() []string {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return append([]string(nil), DefaultRooms...)
	}

	var rooms []string
	for _, e := range entries {
		if e.IsDir() {
			rooms = append(rooms, e.Name())
		}
	}
	if len(rooms) == 0 {
		return append([]string(nil), DefaultRooms...)
	}
	return rooms
}

// RoomPhotos lists the image files directly inside the named room folder,
// non-recursively, in lexicographic order. A missing or unreadable folder
// yields an empty set.
func (r *Resolver) RoomPhotos(room string) []string {
	dir := filepath.Join(r.root, room)
	var photos []string
	for _, e := range r.listImages(dir) {
		photos = append(photos, filepath.Join(dir, e))
	}
	return photos
}

// listImages returns the image file names directly inside dir. os.ReadDir
// sorts entries by name, which gives the stable ordering the reports need.
func (r *Resolver) listImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	return names
}
