// Package gmail implements the mail core: payload decoding, reply
// composition and the retrieval/draft operations, on top of the Gmail
// REST API.
//
// The remote service is consumed through the MailProvider interface so
// the operations can be tested against fakes without network access.
package gmail
