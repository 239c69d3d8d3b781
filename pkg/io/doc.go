// Package io provides JSON import and export for wall layouts.
//
// # JSON Format
//
//	{
//	  "slots": [{"x": 50, "y": 50}, {"x": 50, "y": 360}],
//	  "placements": [
//	    {"index": 0, "slot": 1, "rotation": -3.2, "x": 61.5, "y": 402.7,
//	     "style": "transform:rotate(-3.2deg);top:402.7px;left:61.5px;"}
//	  ],
//	  "skipped": 0
//	}
//
// The "style" field is written for consumers that only need the inline
// style; [ReadJSON] ignores it and recomputes styles from the numbers.
//
// # Validation
//
// [ReadJSON] rejects layouts whose placements reference slots outside the
// slot list, reuse a slot, or carry indices out of order.
package io
