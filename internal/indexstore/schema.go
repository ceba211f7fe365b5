package indexstore

// createStatements lists every table in create order: parents before
// children, so foreign keys resolve. The column set matches §6 exactly.
// "character" and "language" are quoted throughout: both are reserved
// words in Postgres's SQL grammar (CHARACTER the type, LANGUAGE the
// procedural-language clause) and would otherwise fail to parse as bare
// identifiers.
var createStatements = []string{
	`CREATE TABLE thumbnail (
		id TEXT PRIMARY KEY,
		data BYTEA NOT NULL
	)`,
	`CREATE TABLE series (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		comments INTEGER
	)`,
	`CREATE TABLE book (
		id INTEGER PRIMARY KEY,
		main_title TEXT NOT NULL,
		series INTEGER REFERENCES series(id),
		thumbnail TEXT NOT NULL REFERENCES thumbnail(id)
	)`,
	`CREATE TABLE book_title (
		book INTEGER NOT NULL REFERENCES book(id),
		title TEXT NOT NULL
	)`,
	`CREATE TABLE artist (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE book_artist (
		book INTEGER NOT NULL REFERENCES book(id),
		artist TEXT NOT NULL REFERENCES artist(name)
	)`,
	`CREATE TABLE tag (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE book_tag (
		book INTEGER NOT NULL REFERENCES book(id),
		tag TEXT NOT NULL REFERENCES tag(name)
	)`,
	`CREATE TABLE "character" (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE book_character (
		book INTEGER NOT NULL REFERENCES book(id),
		"character" TEXT NOT NULL REFERENCES "character"(name)
	)`,
	`CREATE TABLE book_description (
		book INTEGER NOT NULL REFERENCES book(id),
		name TEXT NOT NULL,
		details TEXT NOT NULL
	)`,
	`CREATE TABLE "language" (
		name TEXT PRIMARY KEY
	)`,
	`CREATE TABLE entry (
		id TEXT PRIMARY KEY,
		book INTEGER NOT NULL REFERENCES book(id),
		title TEXT NOT NULL,
		url TEXT,
		date TIMESTAMP,
		"language" TEXT REFERENCES "language"(name),
		page_count INTEGER,
		comments INTEGER
	)`,
	`CREATE INDEX entry_date_idx ON entry (date)`,
}

// dropStatements reverses table creation order so foreign keys drop clean.
var dropStatements = []string{
	`DROP TABLE IF EXISTS entry`,
	`DROP TABLE IF EXISTS "language"`,
	`DROP TABLE IF EXISTS book_description`,
	`DROP TABLE IF EXISTS book_character`,
	`DROP TABLE IF EXISTS "character"`,
	`DROP TABLE IF EXISTS book_tag`,
	`DROP TABLE IF EXISTS tag`,
	`DROP TABLE IF EXISTS book_artist`,
	`DROP TABLE IF EXISTS artist`,
	`DROP TABLE IF EXISTS book_title`,
	`DROP TABLE IF EXISTS book`,
	`DROP TABLE IF EXISTS series`,
	`DROP TABLE IF EXISTS thumbnail`,
}
