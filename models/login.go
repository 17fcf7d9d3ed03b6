package models

// LoginRequest is the JSON body of the login endpoint.
//
// Password arrives in its obfuscated transport form: a base64 encoding of
// the plaintext wrapped in fixed sentinel markers. De-obfuscation happens
// once, at the start of the login chain, and the recovered plaintext is
// never logged or persisted.
type LoginRequest struct {
	// Account is the account identifier of the subject attempting to log in.
	Account string `json:"account"`

	// Password is the obfuscated presented secret.
	// Excluded from log output by convention; handlers must not dump it.
	Password string `json:"password"`
}

// LoginResponse is the success body of the login endpoint.
type LoginResponse struct {
	// Token is the wire form of the freshly minted session token.
	Token string `json:"token"`
}

// LoginError is the structured rejection body returned when any login
// check fails. ErrorCode carries the numeric code of the failed check
// (account lookup, password comparison, or credential parsing).
type LoginError struct {
	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}
