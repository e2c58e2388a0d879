// Package service is the integration core shared by both adapters. It
// translates caller operations into authenticated outbound calls to
// the calendar provider and the table store, and composes the
// availability, task, contact-search and reminder flows on top of the
// four primitives. The service keeps no state between calls.
package service
