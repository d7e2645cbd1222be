// Package resources resolves the images a book embeds.
//
// # Classification
//
// Every reference found in chapter content is classified once:
//
//	Remote  - absolute http(s) URL, cached under cache/<xxhash>[.ext]
//	Local   - path relative to the chapter file, embedded at its
//	          source-relative location
//
// Resolved assets are collected in a Table keyed by the reference string
// exactly as it appeared in the content. Several keys may point at the same
// bytes; Table.Unique collapses them by Identity so each file is embedded
// once.
//
// # Retrieval
//
// Bytes are obtained through a ContentRetriever. Handler supplies the
// default download-to-cache and read behavior on top of any Retriever, and
// HTTPRetriever fetches over net/http. Tests substitute their own Retriever
// or ContentRetriever.
package resources
