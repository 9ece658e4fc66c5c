// Package contact validates and delivers messages from the site's contact
// form.
//
// A [Submission] is normalized (trimmed, markup stripped) and validated
// before it reaches a [Submitter]. Field problems come back in [State] so the
// form can show them next to the inputs; only transport failures are errors.
//
// Backends:
//
//   - [Formspree] posts to a hosted form endpoint.
//   - [Inbox] stores the message in PostgreSQL and enqueues a notification
//     email in the same transaction. [PurgeTask] removes old messages.
//   - [RateLimited] wraps either one with a per-address limit.
package contact
