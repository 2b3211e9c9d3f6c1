// Package callout adds named fenced containers to goldmark.
//
// A container opens with a line of three or more colons followed by a
// registered name and closes with a line holding at least as many colons:
//
//	::: warning
//	Check the [release notes](https://example.com/notes) first.
//	:::
//
// Two vocabularies are registered by default:
//
//	success, info, warning, danger
//	    <div class="callout callout-{name}">
//	alert-success, alert-info, alert-warning, alert-danger
//	    <div class="alert {name}" role="alert">
//
// Links rendered inside any of them receive the alert-link class. Nesting is
// tracked with a Depth value created for each document, so one Extension can
// serve concurrent conversions.
package callout
