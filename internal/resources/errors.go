package resources

import "errors"

// Sentinel errors for asset resolution and retrieval.
var (
	// ErrAssetNotFound indicates a local reference does not exist on disk.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrAssetNotFile indicates a local reference resolves to something other than a regular file.
	ErrAssetNotFile = errors.New("asset is not a file")
	// ErrAssetOutsideSource indicates a local reference escapes the source directory.
	ErrAssetOutsideSource = errors.New("asset outside source directory")
	// ErrSourceDir indicates the book source directory cannot be used.
	ErrSourceDir = errors.New("invalid source directory")

	// ErrRemoteNotFound indicates the remote server answered 404.
	ErrRemoteNotFound = errors.New("remote resource not found")
	// ErrUnexpectedStatus indicates the remote server answered neither 200 nor 404.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrAssetRead indicates the bytes of an asset could not be read.
	ErrAssetRead = errors.New("unable to read asset")
)
