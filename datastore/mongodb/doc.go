/*
Package mongodb provides the MongoDB implementations of the DocumentStore interface.

Open connects to the server, pings the primary and selects one of two stores
for the lifetime of the returned handle:

  - CollectionStore: one flat record per document. Name, content type and size
    are read from the reserved top-level fields simflofy_filename,
    simflofy_content_type and simflofy_length. Records carry no payload.
  - BucketStore: one GridFS file per document. Name and size come from the file
    header, the content type and every user attribute from the file's metadata
    sub-document. Files uploaded without metadata cannot be fetched by the
    connector but their payload can still be downloaded.

Filters:
Enumeration filters are extended JSON documents. In bucket mode the configured
time range is intersected with the filter as a condition on
metadata.last_modified:

	filter, _ := mongodb.ParseFilter(`{"metadata.dept": "finance"}`)
	filter = mongodb.WithTimeRange(filter, mongodb.LastModifiedField, start, end)
	// {"metadata.dept": "finance", "metadata.last_modified": {"$gte": start, "$lte": end}}

Identity:
With the identity field _id every lookup is by ObjectID. With any other field
the bucket store looks in metadata.<field> while the collection store looks at
the top level. Deleting by a secondary field in bucket mode first resolves the
file's ObjectID and then deletes exactly that file.
*/
package mongodb
