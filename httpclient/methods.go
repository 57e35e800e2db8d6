// httpclient/methods.go
package httpclient

import "net/http"

/* Ref: https://www.rfc-editor.org/rfc/rfc7231#section-8.1.3

+---------+------+------------+
| Method  | Safe | Idempotent |
+---------+------+------------+
| DELETE  | no   | yes        |
| GET     | yes  | yes        |
| HEAD    | yes  | yes        |
| POST    | no   | no         |
| PUT     | no   | yes        |
+---------+------+------------+
*/

// IsSafeHTTPMethod reports whether the method only reads state. The generic client refuses
// anything else, since the only calls it makes are directory reads.
func IsSafeHTTPMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}
