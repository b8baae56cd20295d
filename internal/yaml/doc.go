// Package yaml loads pipeline documents written in YAML. The document shape
// is a `modules` tree mapping each stage name to an ordered sequence of
// module descriptors:
//
//	modules:
//	  data_collection:
//	    - impl: candlefeed
//	      id: primary
//	      config: {symbol: BTCUSD}
//	  signal_generation:
//	    - impl: printsink
//	      id: sink
//	      dependencies:
//	        price_data: {type: data_collection, id: primary}
//
// Stage and descriptor order is preserved. The loader translates everything
// into the format-agnostic config model.
package yaml
