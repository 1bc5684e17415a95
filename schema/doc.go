// Package schema reads and writes type declarations as files.
//
// A schema lists products and sums by name. Field types are primitive names
// (bool, u8, s8, u16, s16, u32, s32, u64, s64) or names of other declared
// types, and declarations may come in any order:
//
//	types:
//	  - name: Instr
//	    sum:
//	      - name: nop
//	      - name: push
//	        tuple: [u8]
//	      - name: arith
//	        tuple: [Arith, u8]
//	  - name: Arith
//	    sum:
//	      - name: add
//	      - name: mul
//	        fields:
//	          - {name: lhs, type: u8}
//	          - {name: rhs, type: u8}
//
// The same model is read from YAML, TOML, JSON with comments, and CBOR;
// Load picks the format from the file extension. Build registers the
// declarations in a codec.Registry in dependency order and rejects unknown
// names and reference cycles.
package schema
