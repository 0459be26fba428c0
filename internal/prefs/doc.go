// Package prefs stores per-save preferences: the chosen bow and preferred
// arrow remembered for each save game.
//
// The store is a small JSON document:
//
//	{
//	  "version": 2,
//	  "saves": {
//	    "quicksave": {"chosen_bow": "0x00013985", "preferred_arrow": "", "updated": "..."}
//	  }
//	}
//
// Save keys are normalized so the same save found through different paths
// or extensions maps to one entry. Older files that stored a flat map of
// key to record, or key to bare bow id, are read and rewritten in the
// current shape on the next Save.
package prefs
