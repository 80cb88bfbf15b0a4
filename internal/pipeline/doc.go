// Package pipeline turns matched samples plus formatted parameters into the
// ordered external-tool commands each processing path runs.
//
// A Command is an ordered sequence of discrete process invocations with
// explicit intermediate file paths, so a failure is attributable to a
// specific stage. Intermediate temp files are namespaced by run prefix, so
// samples never collide even if a caller were to run them concurrently.
//
// Two generators cover the repository's processing paths: Trim builds one
// kneaddata invocation per sample, Filter builds the bowtie2/samtools/
// bedtools/pigz host-filtering chain per sample.
package pipeline
