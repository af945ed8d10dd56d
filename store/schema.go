package store

// Schema creates the two tables the store operates on. Test infrastructure
// applies it to fresh databases; production migrations live with the
// deployment tooling.
const Schema = `
CREATE TABLE IF NOT EXISTS packages (
    id           uuid PRIMARY KEY,
    state_code   text NOT NULL,
    state_number integer NOT NULL,
    created_at   timestamptz NOT NULL,
    UNIQUE (state_code, state_number)
);

CREATE TABLE IF NOT EXISTS revisions (
    id               uuid PRIMARY KEY,
    package_id       uuid NOT NULL REFERENCES packages (id),
    created_at       timestamptz NOT NULL,
    form_data        bytea NOT NULL,
    submitted_at     timestamptz,
    submitted_by     text,
    submitted_reason text,
    unlocked_at      timestamptz,
    unlocked_by      text,
    unlocked_reason  text
);

CREATE INDEX IF NOT EXISTS revisions_package_created_idx
    ON revisions (package_id, created_at DESC, id DESC);
`
