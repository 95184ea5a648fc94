// Package config holds the translator settings and loads them from an
// optional HCL file layered over built-in defaults.
//
// A settings file may reference the defaults and a few collection and
// string functions:
//
//	cmake_minimum_version    = "3.10"
//	configurations           = concat(default_configurations, ["Profile"])
//	header_extensions        = distinct(concat(default_header_extensions, [".inl"]))
//	generated_library_policy = "link"
//
//	generated_root {
//	  token = "0123456789abcdef"
//	}
//
//	family "cc" {
//	  extensions = [".cc", ".cpp", ".cxx", ".c++"]
//	}
//
// HCL treats "${" as an interpolation, so literal CMake variable references
// are written "$${CMAKE_BINARY_DIR}".
package config
