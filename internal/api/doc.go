// Package api handles incoming HTTP requests and response formatting for the
// marketplace: services, reviews, users and the credential cookie. It acts as
// an adapter between HTTP clients and the store interfaces, translating
// path parameters and JSON bodies into store operations and store errors into
// the 400/401/403/500 response taxonomy.
//
// Handlers are written as HandlerFunc values returning an error and are
// adapted with Handle, which is the single place errors become responses.
package api
