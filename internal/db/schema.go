package db

// SchemaSQL is the complete schema for fresh cutroom installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All repository
// tests load it via GetSchemaSQL(), so code that references a column missing
// here fails immediately with "no such column" at test time.
//
// A version's "latest" status is never stored; it is derived from the
// greatest seq among the repo's remaining versions. ord columns hold
// sortable order keys (see internal/core/order), not dense indices.
const SchemaSQL = `
-- Repos (top-level tracked content sources)
CREATE TABLE IF NOT EXISTS repos (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	file_path TEXT NOT NULL,
	archived INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Repo versions (linear append-only chain per repo)
CREATE TABLE IF NOT EXISTS repo_versions (
	id TEXT PRIMARY KEY,
	repo_id TEXT NOT NULL,
	name TEXT NOT NULL,
	seq INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (repo_id) REFERENCES repos(id) ON DELETE CASCADE,
	UNIQUE(repo_id, seq)
);

-- Sections (ordered groupings of lessons within a version)
CREATE TABLE IF NOT EXISTS sections (
	id TEXT PRIMARY KEY,
	repo_version_id TEXT NOT NULL,
	title TEXT NOT NULL,
	ord TEXT NOT NULL,
	FOREIGN KEY (repo_version_id) REFERENCES repo_versions(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_sections_version ON sections(repo_version_id, ord);

-- Lessons (path carries a leading numeric order token: "<n>-<name>")
CREATE TABLE IF NOT EXISTS lessons (
	id TEXT PRIMARY KEY,
	section_id TEXT NOT NULL,
	path TEXT NOT NULL,
	lesson_number INTEGER NOT NULL,
	FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_lessons_section ON lessons(section_id, lesson_number);

-- Videos (lesson_id NULL marks a standalone video)
CREATE TABLE IF NOT EXISTS videos (
	id TEXT PRIMARY KEY,
	lesson_id TEXT,
	path TEXT NOT NULL,
	archived INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (lesson_id) REFERENCES lessons(id) ON DELETE CASCADE
);

-- Clip sections (named, ordered groupings on a video's timeline)
CREATE TABLE IF NOT EXISTS clip_sections (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL,
	name TEXT NOT NULL,
	ord TEXT NOT NULL,
	archived INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_clip_sections_video ON clip_sections(video_id, ord);

-- Clips (source spans; unsectioned clips share the video's order-key space)
CREATE TABLE IF NOT EXISTS clips (
	id TEXT PRIMARY KEY,
	video_id TEXT NOT NULL,
	clip_section_id TEXT,
	video_filename TEXT NOT NULL,
	source_start_time REAL NOT NULL,
	source_end_time REAL NOT NULL,
	beat_type TEXT NOT NULL DEFAULT '',
	text TEXT,
	transcribed_at DATETIME,
	ord TEXT NOT NULL,
	FOREIGN KEY (video_id) REFERENCES videos(id) ON DELETE CASCADE,
	FOREIGN KEY (clip_section_id) REFERENCES clip_sections(id) ON DELETE SET NULL,
	CHECK (source_end_time > source_start_time)
);
CREATE INDEX IF NOT EXISTS idx_clips_video ON clips(video_id, ord);
`

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
