/*
Package driver runs the translation for every platform of a snapshot and
assembles the output tree.

Each platform pass translates its nodes, in id order, into in-memory
fragments. Once a pass is complete its fragments are flushed to a Sink:
every target's fragment gains one platform-guarded block, and the first time
a target is seen in a run its directory's CMakeLists.txt gains an include
line. After the last pass the root CMakeLists.txt is written, including the
top-level fragments and adding every other directory.

Passes may run concurrently. Their results are still flushed in platform
order, so the output does not depend on scheduling.
*/
package driver
