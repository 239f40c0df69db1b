/*
Package hashcode computes structural hash codes for the value collection
types in this module.

Elements, keys and values contribute to a collection's aggregate hash through
a Hasher. The default Hasher derives per-process randomized hashes from
hash/maphash and compares with ==; collections accept a custom Hasher as a
construction option when the default is not appropriate.

Aggregate hashes are built with the combine functions: CombineOrdered for
sequences, where element order is part of the value, and CombineUnordered for
sets and maps, where it is not. Equal collections always produce equal hash
codes; the converse naturally does not hold.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package hashcode
