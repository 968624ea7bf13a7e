// Package openms provides an in-memory spatial index over point features
// collected from multiple feature maps.
//
// Features from all input maps are stored column-wise together with their
// source map index and indexed in a balanced 2-d tree over (retention time,
// m/z). The index answers two kinds of queries:
//
//   - Neighborhood: all features inside a tolerance window around a stored
//     feature, with same-map exclusion and an optional intensity
//     log-fold-change bound
//   - Region: all features inside an explicit rt/mz bounding box, with an
//     optional ignored source map
//
// Both return the matching feature ids as a Roaring bitmap; the caller owns
// any matching or clustering decision built on top.
//
// # Quick start
//
//	maps := [][]*feature.Feature{
//	    {feature.New(10.0, 500.0, 100.0, 2)},
//	    {feature.New(10.3, 501.5, 110.0, 2)},
//	}
//
//	fm := openms.New()
//	if err := openms.AddMaps(fm, maps); err != nil {
//	    panic(err)
//	}
//
//	ids, err := fm.Neighborhood(0, 0.5, 2.0)
//	if err != nil {
//	    panic(err)
//	}
//	for it := ids.Iterator(); it.HasNext(); {
//	    process(it.Next())
//	}
//
// # Payload ownership
//
// An instance is fixed at construction to one of two payload modes: New
// stores shared read-only references, NewMutable stores exclusively owned
// references whose fields remain writable through MutableFeature. The two
// modes never mix; ingestion calls that disagree with the instance's mode
// fail before any state changes.
//
// # Retention time correction
//
// ApplyTransformations rewrites every retention time through one
// transform.Model per source map and rebuilds the tree. The tree is a
// snapshot: it is rebuilt wholesale after every ingestion batch and every
// transform application, never updated in place.
package openms
