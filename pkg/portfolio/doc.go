// Package portfolio provides content management for a small artist-portfolio
// site: artwork and exhibition records, a singleton "about" record, and the
// image objects those records reference.
//
// The package follows an interface-based architecture:
//
//   - Service: the main façade translating intents (add artwork, delete
//     exhibition, update about info) into repository and blob store calls
//   - Repository: record persistence (memory, postgres implementations)
//   - BlobStore: binary image storage, one instance per named bucket
//     (memory, fs, s3 implementations)
//   - EventSink: observability hooks fired after successful mutations
//
// Construct a Service with functional options:
//
//	svc, err := portfolio.New(
//	    portfolio.WithRepository(memory.New()),
//	    portfolio.WithBlobStore(portfolio.BucketArtworks, memorystorage.New(portfolio.BucketArtworks)),
//	)
//
// Operations that attach an image are two-phase: the image is uploaded first,
// then the record referencing its public URL is written. When the record
// write fails after a successful upload, the uploaded object is deleted so
// image and record appear together or not at all.
package portfolio
