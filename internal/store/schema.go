package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL UNIQUE,
    preset               TEXT,
    schedule             TEXT NOT NULL,
    exp_a                REAL NOT NULL,
    exp_b                REAL NOT NULL,
    exp_c                REAL NOT NULL,
    exp_d                REAL NOT NULL,
    log_a                REAL NOT NULL,
    log_b                REAL NOT NULL,
    log_c                REAL NOT NULL,
    log_d                REAL NOT NULL,
    notes                TEXT,
    created_at           TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(updated_at);
`
