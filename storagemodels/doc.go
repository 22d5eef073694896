/*
Package storagemodels defines the data structures used throughout the connector.

Key Types:

Document:
The generic document exchanged with the host runtime. Read operations fill ID,
Name, MimeType and Size; the writer additionally consumes ParentPath and the
created and modified dates.

Record:
A native result normalized across the two storage modes. In GridFS mode the
name, size and content type come from the file header and Fields is the file's
metadata sub-document; in collection mode they come from the reserved top-level
fields and Fields is the whole record.

QueryParams:
Parameters for an enumeration:

	params := &QueryParams{
	    Filter: `{"department": "finance"}`,
	    Start:  time.UnixMilli(startMillis),
	    End:    time.UnixMilli(endMillis),
	}

StreamOptions:
Configuration for enumeration behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithFetchRate(50, 10),
	    WithProgressHandler(progressFunc),
	}

The reserved field names (simflofy_created_by, simflofy_length, ...) are
defined here so that the writer, the stores and their tests agree on them.
*/
package storagemodels
