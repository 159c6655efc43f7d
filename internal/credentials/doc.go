// Package credentials persists the bridge's single Spotify credential.
//
// # Credential
//
// [Credential] mirrors the JSON record written to disk (access_token, token_type, expires_at,
// refresh_token, scope). It is either absent or fully populated.
//
// # Stores
//
// [FileStore] keeps the record in one file and replaces it with a temp-file-and-rename write, so a
// crash mid-save never leaves a truncated token behind. A missing file loads as (nil, nil).
//
// [MemoryStore] satisfies the same [Store] contract for tests and embedding.
//
// Neither store locks across processes; the auth package serializes writers inside one process.
package credentials
