// Package auth issues and verifies the signed credentials that gate
// per-user endpoints, and models the caller's identity as a Principal.
//
// Credentials are HS256 JWTs whose claims are an arbitrary identity payload
// plus iat, exp and jti. Nothing is persisted server-side: a credential is
// valid exactly when its signature verifies and it has not expired.
package auth
