/*
Package snapshot reads the per-platform target graphs written by the GYP
analysis generator and turns them into normalized target.Graph values.

A snapshot document maps a platform key (the frontend host's sys.platform,
e.g. "linux2", "darwin", "win32") to that platform's targets and the working
directory ids were recorded against:

	{
	  "linux2": {
	    "targets": { "/src/base/base.gyp:base#target": { "type": "static_library", ... } },
	    "params":  { "cwd": "/src" }
	  }
	}

Documents may be JSON or YAML. A directory is read as the union of every
document in it; a platform may only appear once.
*/
package snapshot
