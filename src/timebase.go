package gopsd

/*------------------------------------------------------------------
 *
 * Purpose:   	Constants which must track the real world.
 *
 * Description:	See the discussion in gpsd's timebase.h.  The leap
 *		second count changes when the IERS schedules one,
 *		which it announces about six months ahead.
 *
 *------------------------------------------------------------------*/

/*
 * This is the floor for the broadcast leap second count.  The decoder
 * refuses to believe any subframe 4 page 56 value below it, because a
 * leap second count can never go backwards.
 *
 * Must be updated when the next leap second is scheduled.
 * Last event: 2017-01-01.
 */
const LEAP_SECONDS = 18
