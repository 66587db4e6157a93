// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/page). This root package
// holds the error taxonomy: sentinel errors for errors.Is and typed errors
// for errors.As, each carrying an explicit message.
package domain
