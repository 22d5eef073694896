/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Reserved field names written by the document writer. Downstream consumers
// use them to recognize system authored attributes.
const (
	FieldCreatedBy          = "simflofy_created_by"
	FieldCreated            = "simflofy_created"
	FieldPath               = "simflofy_path"
	FieldDownloadable       = "simflofy_downloadable"
	FieldFilename           = "simflofy_filename"
	FieldLastModified       = "last_modified"
	FieldCreatedDate        = "created"
	FieldTypeName           = "simflofy_typename"
	FieldSystemLastModified = "simflofy_last_modified"
	FieldLastModifiedBy     = "simflofy_last_modified_by"
	FieldContentType        = "simflofy_content_type"
	FieldLength             = "simflofy_length"
	FieldSourceRepositoryID = "source_repository_id"
)

const (
	// SystemActor is recorded as creator and last modifier of written documents.
	SystemActor = "Simflofy"
	// DocumentTypeName is the value of FieldTypeName.
	DocumentTypeName = "document"
	// DefaultMimeType is reported when a payload has no stored content type.
	DefaultMimeType = "application/octet-stream"
	// NativeIDField is the store's own identifier field.
	NativeIDField = "_id"
	// MetadataPrefix namespaces user attributes of GridFS files.
	MetadataPrefix = "metadata."
	// FilesSuffix names the GridFS files collection of a bucket.
	FilesSuffix = ".files"
)

// ReservedFields lists every reserved field name in write order.
var ReservedFields = []string{
	FieldCreatedBy,
	FieldCreated,
	FieldPath,
	FieldDownloadable,
	FieldFilename,
	FieldLastModified,
	FieldCreatedDate,
	FieldTypeName,
	FieldSystemLastModified,
	FieldLastModifiedBy,
	FieldContentType,
	FieldLength,
	FieldSourceRepositoryID,
}

// IsReserved reports whether name is a reserved field.
func IsReserved(name string) bool {
	for _, f := range ReservedFields {
		if f == name {
			return true
		}
	}
	return false
}
