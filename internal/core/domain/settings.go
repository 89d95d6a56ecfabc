package domain

const unknownDescription = "Unknown"

// SourceKind identifies where catalog documents are read from.
type SourceKind string

// Available document sources.
const (
	// SourceFilesystem reads the manifest and documents from a local directory.
	SourceFilesystem SourceKind = "filesystem"

	// SourceGitHub reads the manifest and documents from a GitHub repository.
	SourceGitHub SourceKind = "github"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceFilesystem, SourceGitHub:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the source kind.
func (k SourceKind) Description() string {
	switch k {
	case SourceFilesystem:
		return "Local directory"
	case SourceGitHub:
		return "GitHub repository"
	default:
		return unknownDescription
	}
}

// DataSettings locates the catalog documents.
type DataSettings struct {
	// Source selects the document source adapter.
	Source SourceKind `validate:"required,oneof=filesystem github"`

	// Dir is the local data directory (filesystem source).
	Dir string `validate:"required_if=Source filesystem"`

	// Manifest is the manifest identifier relative to the source root.
	Manifest string `validate:"required"`
}

// GitHubSettings configures the GitHub document source.
type GitHubSettings struct {
	// Repo is "owner/name".
	Repo string `validate:"omitempty,contains=/"`

	// Ref is a branch, tag or commit. Empty means the default branch.
	Ref string

	// Path is the directory inside the repository holding the manifest.
	Path string

	// Token authenticates API calls. Optional for public repositories.
	Token string
}

// LoadSettings tunes the loader.
type LoadSettings struct {
	// Concurrency bounds parallel document fetches.
	Concurrency int `validate:"min=1,max=64"`
}

// QuerySettings tunes query defaults.
type QuerySettings struct {
	// Limit is the default number of rows per query.
	Limit int `validate:"min=1"`

	// MatchCategory extends text matching to the category label.
	MatchCategory bool
}

// WatchSettings tunes reload on change.
type WatchSettings struct {
	// IntervalMs is the minimum delay between reloads.
	IntervalMs int `validate:"min=0"`
}

// ServeSettings configures the HTTP API.
type ServeSettings struct {
	// Addr is the listen address.
	Addr string `validate:"required"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	Data   DataSettings
	GitHub GitHubSettings
	Load   LoadSettings
	Query  QuerySettings
	Watch  WatchSettings
	Serve  ServeSettings

	// Categories extends or overrides the taxonomy, keyed by structural key.
	Categories map[string]Classification
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Data: DataSettings{
			Source:   SourceFilesystem,
			Dir:      ".",
			Manifest: "manifest.json",
		},
		Load:  LoadSettings{Concurrency: 4},
		Query: QuerySettings{Limit: DefaultLimit},
		Watch: WatchSettings{IntervalMs: 500},
		Serve: ServeSettings{Addr: ":8080"},
	}
}

// AllSourceKinds returns all available document sources.
func AllSourceKinds() []SourceKind {
	return []SourceKind{SourceFilesystem, SourceGitHub}
}
