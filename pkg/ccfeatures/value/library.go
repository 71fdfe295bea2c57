package value

import "github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"

// LibraryType enumerates the kinds of library a LibraryToLink may name.
type LibraryType int

const (
	ObjectFile LibraryType = iota
	ObjectFileGroup
	InterfaceLibrary
	StaticLibrary
	DynamicLibrary
	VersionedDynamicLibrary
)

func (t LibraryType) String() string {
	switch t {
	case ObjectFile:
		return "object_file"
	case ObjectFileGroup:
		return "object_file_group"
	case InterfaceLibrary:
		return "interface_library"
	case StaticLibrary:
		return "static_library"
	case DynamicLibrary:
		return "dynamic_library"
	case VersionedDynamicLibrary:
		return "versioned_dynamic_library"
	default:
		return "unknown_library_type"
	}
}

// LibraryToLink is the specialized structure value describing a single
// library a link action consumes. Its object_files field is computed
// either from an explicit list fixed at construction, or by expanding a
// tree artifact through the caller-supplied Expander each time the field is
// read; the expansion result is not cached.
type LibraryToLink struct {
	name           string
	libType        LibraryType
	isWholeArchive bool

	objectFiles    []string
	treeArtifactID string
}

// NewLibraryToLink builds a library backed by an explicit object file list.
func NewLibraryToLink(name string, libType LibraryType, isWholeArchive bool, objectFiles []string) *LibraryToLink {
	return &LibraryToLink{name: name, libType: libType, isWholeArchive: isWholeArchive, objectFiles: objectFiles}
}

// NewLibraryToLinkFromTreeArtifact builds a library whose object files are
// resolved lazily by expanding treeArtifactID on each object_files access.
func NewLibraryToLinkFromTreeArtifact(name string, libType LibraryType, isWholeArchive bool, treeArtifactID string) *LibraryToLink {
	return &LibraryToLink{name: name, libType: libType, isWholeArchive: isWholeArchive, treeArtifactID: treeArtifactID}
}

func (l *LibraryToLink) IsTruthy() bool   { return true }
func (l *LibraryToLink) TypeName() string { return "library_to_link" }

// Field implements the structure-like field access LibraryToLink supports:
// name, object_files, type, is_whole_archive. name is absent (nil, no
// error) when the library's type is object_file_group.
func (l *LibraryToLink) Field(name string, expander Expander) (Value, error) {
	switch name {
	case "name":
		if l.libType == ObjectFileGroup {
			return nil, nil
		}
		return String(l.name), nil
	case "object_files":
		files, err := l.resolveObjectFiles(expander)
		if err != nil {
			return nil, err
		}
		return StringSequence(files), nil
	case "type":
		return String(l.libType.String()), nil
	case "is_whole_archive":
		if l.isWholeArchive {
			return Integer(1), nil
		}
		return Integer(0), nil
	default:
		return nil, nil
	}
}

func (l *LibraryToLink) resolveObjectFiles(expander Expander) ([]string, error) {
	if l.treeArtifactID == "" {
		return l.objectFiles, nil
	}
	if expander == nil {
		return nil, diags.NewExpansionError("library %q requires an artifact expander to resolve object_files", l.name)
	}
	artifacts, err := expander.Expand(l.treeArtifactID)
	if err != nil {
		return nil, diags.NewExpansionError("expanding tree artifact %q: %s", l.treeArtifactID, err)
	}
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}
	return paths, nil
}
