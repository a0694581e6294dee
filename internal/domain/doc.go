// Package domain defines core data models, interfaces and error values shared
// across the app. It contains plain types (stored documents, sessions),
// contracts (interfaces) and the error taxonomy only.
package domain
