/*
Package cmake serializes translated nodes as CMake statements.

A Writer emits one node's block into an in-memory buffer. It tracks the
current indentation and the names it has declared as INTERFACE libraries,
which decides the exposure qualifier of later property statements:

	add_dependencies           no qualifier
	declared INTERFACE         INTERFACE
	target_link_libraries      PUBLIC
	anything else              PRIVATE

The index helpers render the root CMakeLists.txt and the per-directory
include lists that tie the fragments together.
*/
package cmake
