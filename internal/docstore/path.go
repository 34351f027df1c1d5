package docstore

import (
	"fmt"
	"strings"
)

// Path addresses a collection (odd number of segments) or a document
// (even number of segments)
type Path []string

// Collection builds a collection path from segments
func Collection(segments ...string) Path {
	return Path(segments)
}

// Doc returns the path of document id inside collection p
func (p Path) Doc(id string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, id)
}

// Collection returns the path of sub-collection name under document p
func (p Path) Collection(name string) Path {
	return p.Doc(name)
}

// IsCollection reports whether p addresses a collection
func (p Path) IsCollection() bool {
	return len(p)%2 == 1
}

// IsDocument reports whether p addresses a document
func (p Path) IsDocument() bool {
	return len(p) > 0 && len(p)%2 == 0
}

// ID returns the last segment of p
func (p Path) ID() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the collection a document belongs to
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// String joins the segments with slashes
func (p Path) String() string {
	return strings.Join(p, "/")
}

// ValidSegment reports whether s can name a collection or document: it must
// be non-empty and free of '/' and ':'. Ids failing this can never be stored.
func ValidSegment(s string) bool {
	return s != "" && !strings.ContainsAny(s, "/:")
}

func (p Path) validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for i, seg := range p {
		if seg == "" {
			return fmt.Errorf("%w: empty segment %d in %q", ErrInvalidPath, i, p.String())
		}
		if !ValidSegment(seg) {
			return fmt.Errorf("%w: segment %q contains a reserved character", ErrInvalidPath, seg)
		}
	}
	return nil
}

func (p Path) validateCollection() error {
	if err := p.validate(); err != nil {
		return err
	}
	if !p.IsCollection() {
		return fmt.Errorf("%w: %q is not a collection", ErrInvalidPath, p.String())
	}
	return nil
}

func (p Path) validateDocument() error {
	if err := p.validate(); err != nil {
		return err
	}
	if !p.IsDocument() {
		return fmt.Errorf("%w: %q is not a document", ErrInvalidPath, p.String())
	}
	return nil
}
