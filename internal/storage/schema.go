package storage

// schema is portable between SQLite and PostgreSQL. Times are hour indexes.
const schema = `
-- Decks group cards; names are shown as "name: description" so they carry no colon.
CREATE TABLE IF NOT EXISTS decks (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT ''
);

-- Cards hold both faces plus the review schedule written after each study.
CREATE TABLE IF NOT EXISTS cards (
    id TEXT PRIMARY KEY,
    deck_id TEXT NOT NULL,
    prompt TEXT NOT NULL,
    prompt_example TEXT NOT NULL DEFAULT '',
    target TEXT NOT NULL,
    target_example TEXT NOT NULL DEFAULT '',
    time_added BIGINT NOT NULL,
    next_review BIGINT NOT NULL,
    interval_progress INTEGER NOT NULL DEFAULT 0 CHECK (interval_progress >= 0),

    UNIQUE (deck_id, prompt),
    FOREIGN KEY (deck_id) REFERENCES decks(id)
);

CREATE INDEX IF NOT EXISTS cards_deck_next_review ON cards (deck_id, next_review);
`
