// Package server owns the process lifecycle of the gateway's transport
// servers: startup, signal handling, and graceful shutdown.
package server
