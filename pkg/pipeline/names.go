package pipeline

import (
	"fmt"

	"shortcardiac/pkg/config"
)

// Fixed measurement names.
const (
	SeptumAngleName = "Septum_angle [°]"

	EILineRV0Name      = "EI_line_rv_endo_0 [mm]"
	EILineRV90Name     = "EI_line_rv_endo_90 [mm]"
	EILineLVEpi0Name   = "EI_line_lv_epi_0 [mm]"
	EILineLVEpi90Name  = "EI_line_lv_epi_90 [mm]"
	EILineLVEndo0Name  = "EI_line_lv_endo_0 [mm]"
	EILineLVEndo90Name = "EI_line_lv_endo_90 [mm]"
	SeptumAxisToRVName = "Septum_axis_to_rv_endo [mm]"

	CenterRVName         = "Center_rv_endo"
	SeptumRefName        = "SeptumRefPoint"
	SeptumInferiorName   = "SeptumInferiorRefPoint"
	CenterLVEpiName      = "Center_lv_epi"
	CenterLVEndoName     = "Center_lv_endo"
	SeptumCenterName     = "Center point between RefPoints"
	IntersectionRVName   = "Line_Intersection_EI_rv_endo"
	IntersectionEpiName  = "Line_Intersection_EI_lv_epi"
	IntersectionEndoName = "Line_Intersection_EI_lv_endo"

	AreaRVName      = "Area_rv_endo [mm^2]"
	AreaBetweenName = "Area_between_rv_endo_and_septum_axis [mm^2]"
	AreaLVEpiName   = "Area_lv_epi [mm^2]"
	AreaLVEndoName  = "Area_lv_endo [mm^2]"
	ScopeRVName     = "scope_rv_endo [mm]"
	ScopeLVEpiName  = "scope_lv_epi [mm]"
	ScopeLVEndoName = "scope_lv_endo [mm]"
	EIRVName        = "EI_rv_endo"
	EILVEpiName     = "EI_lv_epi"
	EILVEndoName    = "EI_lv_endo"
)

// RVVentralName is the name of the ventral RV profile sample at angle.
func RVVentralName(angle int) string {
	return fmt.Sprintf("septum_center_to_right_ventricle_endo_ventral %d° [mm]", angle)
}

// RVDorsalName is the name of the dorsal RV profile sample at angle.
func RVDorsalName(angle int) string {
	return fmt.Sprintf("septum_center_to_rv_endo_dorsal %d° [mm]", angle)
}

func lvEpiName(angle int) string  { return fmt.Sprintf("Distance_lv_epi %d° [mm]", angle) }
func lvEndoName(angle int) string { return fmt.Sprintf("Distance_lv_endo %d° [mm]", angle) }

// Names returns the measurement names of a run in output order.
func Names(run config.RunConfiguration, featureNames []string) []string {
	names := []string{SeptumAngleName}

	for _, a := range run.RVVentralAngles {
		names = append(names, RVVentralName(a))
	}
	for _, a := range run.RVDorsalAngles {
		names = append(names, RVDorsalName(a))
	}
	for _, a := range run.LVEpiAngles {
		names = append(names, lvEpiName(a))
	}
	for _, a := range run.LVEndoAngles {
		names = append(names, lvEndoName(a))
	}
	names = append(names,
		EILineRV0Name, EILineRV90Name,
		EILineLVEpi0Name, EILineLVEpi90Name,
		EILineLVEndo0Name, EILineLVEndo90Name,
		SeptumAxisToRVName,

		CenterRVName, SeptumRefName, SeptumInferiorName,
		CenterLVEpiName, CenterLVEndoName, SeptumCenterName,
		IntersectionRVName, IntersectionEpiName, IntersectionEndoName,

		AreaRVName, AreaBetweenName, AreaLVEpiName, AreaLVEndoName,
		ScopeRVName, ScopeLVEpiName, ScopeLVEndoName,
		EIRVName, EILVEpiName, EILVEndoName,
	)
	return append(names, featureNames...)
}
