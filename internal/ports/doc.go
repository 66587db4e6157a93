// Package ports holds the interfaces the page service is assembled from.
//
// [PageManager] is the inbound port: HTTP handlers and the pagectl CLI call
// it, the app package implements it. [DocumentClient] is the outbound port to
// the document API, implemented by the acl package. The health interfaces
// back the readiness check.
package ports
