// Package config loads blueprints from YAML files.
//
// A blueprint file declares an ordered list of processors with their
// arguments, tags, links and status overrides, plus blueprint-wide
// settings:
//
//	settings:
//	  context: shot
//
//	processors:
//	  - process: modeling.UnusedShaders
//	    category: Cleanup
//	    tags: [NON_BLOCKING]
//	    links:
//	      - target: DeleteHistory
//	        driver: fix
//	        driven: check
//	    statuses:
//	      Unused shaders:
//	        fail: Warning
//
// Parsing is strict: unknown fields, unknown tag or operation names and
// unresolvable status names all fail the load, so a broken blueprint is
// rejected before any processor is built.
package config
