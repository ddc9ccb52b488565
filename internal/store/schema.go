package store

// schemaTemplate is the database schema initialization SQL. The embedding
// index dimension is injected from the configured embedder, so the schema
// and the embedding model can never disagree.
const schemaTemplate = `
    -- ==========================================================================
    -- DOCUMENT TABLE
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS document SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS doc_id ON document TYPE string;
    DEFINE FIELD IF NOT EXISTS content ON document TYPE string;
    DEFINE FIELD IF NOT EXISTS metadata ON document TYPE option<object> FLEXIBLE;
    DEFINE FIELD IF NOT EXISTS embedding ON document TYPE array<float>;
    DEFINE FIELD IF NOT EXISTS created ON document TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS document_doc_id ON document FIELDS doc_id UNIQUE;
    DEFINE INDEX IF NOT EXISTS document_embedding ON document FIELDS embedding HNSW DIMENSION %d DIST COSINE TYPE F32;

    -- ==========================================================================
    -- STORE_META TABLE (existence marker and save bookkeeping)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS store_meta SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS saves ON store_meta TYPE int DEFAULT 0;
    DEFINE FIELD IF NOT EXISTS last_saved ON store_meta TYPE datetime DEFAULT time::now();
`
