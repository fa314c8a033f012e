package entity

type keyType string

// SessionContextKey is the context key under which the id of the editor connection serving a request is stored.
const SessionContextKey keyType = "SessionUUID"
