// Package resp provides JSON response helpers shared by the HTTP handlers.
//
// Successful responses carry the payload as the body; failures use the
// Exception envelope:
//
//	{
//	  "code": 1404,
//	  "message": "starting point not found",
//	  "errors": {...}
//	}
//
// Usage:
//
//	resp.Success(w, nodes)
//	resp.BadRequest(w, "term is required")
//	resp.ServerError(w, "search failed")
package resp
