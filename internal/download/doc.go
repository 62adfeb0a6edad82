// Package download drives a playlist through the fetch, infer, re-encode and
// tag pipeline one item at a time. A Batch is pull-driven: every call to Next
// processes exactly one playlist item, retrying it from scratch up to the
// configured number of attempts before skipping it.
package download
