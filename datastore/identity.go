/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/metadata"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
)

// ResolveIdentity returns the identity of a native result.
//
// In bucket mode only attributed files have an identity: the configured
// metadata field, or the native id when the identity field is _id. In
// collection mode the configured top-level field is preferred and the native
// id is the fallback.
func ResolveIdentity(idField string, mode storagemodels.Mode, rec *storagemodels.Record) (string, bool) {
	if rec == nil {
		return "", false
	}
	native := idField == "" || idField == storagemodels.NativeIDField

	if mode == storagemodels.ModeBucket {
		if !rec.Attributed {
			return "", false
		}
		if !native {
			v, ok := rec.Fields[idField]
			if !ok {
				return "", false
			}
			return metadata.Stringify(v), true
		}
	} else if !native {
		if v, ok := rec.Fields[idField]; ok {
			return metadata.Stringify(v), true
		}
	}

	if rec.NativeID == nil {
		return "", false
	}
	return metadata.Stringify(rec.NativeID), true
}
