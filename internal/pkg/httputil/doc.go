// Package httputil provides shared JSON request/response helpers so every
// handler shapes its output the same way.
package httputil
